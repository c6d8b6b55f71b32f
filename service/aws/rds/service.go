package awsrds

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	rdstypes "github.com/aws/aws-sdk-go-v2/service/rds/types"
	"github.com/elC0mpa/aws-rate-genie/model"
	"github.com/elC0mpa/aws-rate-genie/service/aws/awserr"
	"github.com/go-logr/logr"
)

const (
	connectionsNamespace = "AWS/RDS"
	connectionsMetric    = "DatabaseConnections"
	dailyPeriodSeconds   = 86400
)

func NewService(awsconfig aws.Config, opts Options, log logr.Logger) *service {
	return newService(rds.NewFromConfig(awsconfig), cloudwatch.NewFromConfig(awsconfig), opts, log, time.Now)
}

func newService(rdsClient RDSAPI, cwClient CloudWatchAPI, opts Options, log logr.Logger, now func() time.Time) *service {
	return &service{
		rds:        rdsClient,
		cloudwatch: cwClient,
		opts:       opts,
		log:        log.WithName("rds"),
		now:        now,
	}
}

// FindIdleDatabases returns the DB instances whose daily DatabaseConnections
// sums add up to zero over the lookback window. Instances whose metrics cannot
// be read are logged and left out.
func (s *service) FindIdleDatabases(ctx context.Context) ([]model.IdleDatabase, error) {
	end := s.now().UTC()
	start := end.AddDate(0, 0, -s.opts.LookbackDays)

	var idle []model.IdleDatabase

	paginator := rds.NewDescribeDBInstancesPaginator(s.rds, &rds.DescribeDBInstancesInput{})
	for paginator.HasMorePages() {
		output, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, awserr.Classify("rds", err)
		}

		for _, instance := range output.DBInstances {
			id := aws.ToString(instance.DBInstanceIdentifier)

			connections, err := s.totalConnections(ctx, id, start, end)
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				s.log.Error(err, "skipping database, connection metrics unavailable", "identifier", id)
				continue
			}
			if connections > 0 {
				continue
			}

			idle = append(idle, toIdleDatabase(instance))
		}
	}

	return idle, nil
}

func (s *service) totalConnections(ctx context.Context, id string, start, end time.Time) (float64, error) {
	output, err := s.cloudwatch.GetMetricStatistics(ctx, &cloudwatch.GetMetricStatisticsInput{
		Namespace:  aws.String(connectionsNamespace),
		MetricName: aws.String(connectionsMetric),
		Dimensions: []cwtypes.Dimension{
			{
				Name:  aws.String("DBInstanceIdentifier"),
				Value: aws.String(id),
			},
		},
		StartTime:  aws.Time(start),
		EndTime:    aws.Time(end),
		Period:     aws.Int32(dailyPeriodSeconds),
		Statistics: []cwtypes.Statistic{cwtypes.StatisticSum},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to get %s for %s: %w", connectionsMetric, id, err)
	}

	var total float64
	for _, dp := range output.Datapoints {
		total += aws.ToFloat64(dp.Sum)
	}
	return total, nil
}

func toIdleDatabase(instance rdstypes.DBInstance) model.IdleDatabase {
	return model.IdleDatabase{
		Identifier:   aws.ToString(instance.DBInstanceIdentifier),
		Arn:          aws.ToString(instance.DBInstanceArn),
		InstanceType: aws.ToString(instance.DBInstanceClass),
		Engine:       aws.ToString(instance.Engine),
		Status:       aws.ToString(instance.DBInstanceStatus),
		CreatedAt:    instance.InstanceCreateTime,
	}
}

// TagIdleDatabases adds the configured idle tag to each database and returns
// the list with Tagged set on the ones that succeeded.
func (s *service) TagIdleDatabases(ctx context.Context, databases []model.IdleDatabase) ([]model.IdleDatabase, error) {
	if s.opts.TagKey == "" {
		return nil, fmt.Errorf("idle tag key is not configured")
	}

	tagged := make([]model.IdleDatabase, len(databases))
	copy(tagged, databases)

	for i, db := range tagged {
		if db.Arn == "" {
			continue
		}
		_, err := s.rds.AddTagsToResource(ctx, &rds.AddTagsToResourceInput{
			ResourceName: aws.String(db.Arn),
			Tags: []rdstypes.Tag{
				{
					Key:   aws.String(s.opts.TagKey),
					Value: aws.String(s.opts.TagValue),
				},
			},
		})
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			s.log.Error(err, "failed to tag idle database", "identifier", db.Identifier)
			continue
		}
		tagged[i].Tagged = true
		s.log.V(1).Info("tagged idle database", "identifier", db.Identifier, "tag", s.opts.TagKey)
	}

	return tagged, nil
}
