package awsrds

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/elC0mpa/aws-rate-genie/model"
	"github.com/go-logr/logr"
)

// RDSAPI is the subset of the RDS client used here.
type RDSAPI interface {
	DescribeDBInstances(ctx context.Context, params *rds.DescribeDBInstancesInput, optFns ...func(*rds.Options)) (*rds.DescribeDBInstancesOutput, error)
	AddTagsToResource(ctx context.Context, params *rds.AddTagsToResourceInput, optFns ...func(*rds.Options)) (*rds.AddTagsToResourceOutput, error)
}

// CloudWatchAPI is the subset of the CloudWatch client used here.
type CloudWatchAPI interface {
	GetMetricStatistics(ctx context.Context, params *cloudwatch.GetMetricStatisticsInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.GetMetricStatisticsOutput, error)
}

// Options controls idle detection and tagging.
type Options struct {
	LookbackDays int
	TagKey       string
	TagValue     string
}

type service struct {
	rds        RDSAPI
	cloudwatch CloudWatchAPI
	opts       Options
	log        logr.Logger
	now        func() time.Time
}

type RDSService interface {
	FindIdleDatabases(ctx context.Context) ([]model.IdleDatabase, error)
	TagIdleDatabases(ctx context.Context, databases []model.IdleDatabase) ([]model.IdleDatabase, error)
}
