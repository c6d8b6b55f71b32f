package awsrds

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	rdstypes "github.com/aws/aws-sdk-go-v2/service/rds/types"
	"github.com/aws/smithy-go"
	"github.com/elC0mpa/aws-rate-genie/model"
	"github.com/elC0mpa/aws-rate-genie/service/costengine"
	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRDS struct {
	pages       map[string]*rds.DescribeDBInstancesOutput
	describeErr error
	tagErr      map[string]error
	tagged      []*rds.AddTagsToResourceInput
}

func (f *fakeRDS) DescribeDBInstances(_ context.Context, params *rds.DescribeDBInstancesInput, _ ...func(*rds.Options)) (*rds.DescribeDBInstancesOutput, error) {
	if f.describeErr != nil {
		return nil, f.describeErr
	}
	return f.pages[aws.ToString(params.Marker)], nil
}

func (f *fakeRDS) AddTagsToResource(_ context.Context, params *rds.AddTagsToResourceInput, _ ...func(*rds.Options)) (*rds.AddTagsToResourceOutput, error) {
	if err := f.tagErr[aws.ToString(params.ResourceName)]; err != nil {
		return nil, err
	}
	f.tagged = append(f.tagged, params)
	return &rds.AddTagsToResourceOutput{}, nil
}

type fakeCloudWatch struct {
	sums   map[string][]float64
	errs   map[string]error
	inputs []*cloudwatch.GetMetricStatisticsInput
}

func (f *fakeCloudWatch) GetMetricStatistics(_ context.Context, params *cloudwatch.GetMetricStatisticsInput, _ ...func(*cloudwatch.Options)) (*cloudwatch.GetMetricStatisticsOutput, error) {
	f.inputs = append(f.inputs, params)
	id := aws.ToString(params.Dimensions[0].Value)
	if err := f.errs[id]; err != nil {
		return nil, err
	}
	output := &cloudwatch.GetMetricStatisticsOutput{}
	for _, sum := range f.sums[id] {
		output.Datapoints = append(output.Datapoints, cwtypes.Datapoint{Sum: aws.Float64(sum)})
	}
	return output, nil
}

func instance(id, class string) rdstypes.DBInstance {
	return rdstypes.DBInstance{
		DBInstanceIdentifier: aws.String(id),
		DBInstanceArn:        aws.String("arn:aws:rds:eu-west-2:123456789012:db:" + id),
		DBInstanceClass:      aws.String(class),
		Engine:               aws.String("mysql"),
		DBInstanceStatus:     aws.String("available"),
	}
}

var testNow = time.Date(2024, time.October, 14, 12, 0, 0, 0, time.UTC)

func newTestService(r *fakeRDS, cw *fakeCloudWatch) *service {
	return newService(r, cw, Options{LookbackDays: 30, TagKey: "finops:idle", TagValue: "true"}, logr.Discard(), func() time.Time { return testNow })
}

func TestFindIdleDatabases(t *testing.T) {
	r := &fakeRDS{pages: map[string]*rds.DescribeDBInstancesOutput{
		"": {
			DBInstances: []rdstypes.DBInstance{instance("busy", "db.r5.large"), instance("quiet", "db.t3.medium")},
			Marker:      aws.String("page-2"),
		},
		"page-2": {
			DBInstances: []rdstypes.DBInstance{instance("empty", "db.m5.large"), instance("broken", "db.m5.large")},
		},
	}}
	cw := &fakeCloudWatch{
		sums: map[string][]float64{
			"busy":  {0, 3, 12},
			"quiet": {0, 0},
		},
		errs: map[string]error{"broken": errors.New("metric unavailable")},
	}

	idle, err := newTestService(r, cw).FindIdleDatabases(context.Background())
	require.NoError(t, err)

	require.Len(t, idle, 2)
	assert.Equal(t, "quiet", idle[0].Identifier)
	assert.Equal(t, "db.t3.medium", idle[0].InstanceType)
	assert.Equal(t, "mysql", idle[0].Engine)
	assert.Equal(t, "empty", idle[1].Identifier)
	assert.False(t, idle[1].Tagged)

	require.Len(t, cw.inputs, 4)
	in := cw.inputs[0]
	assert.Equal(t, "AWS/RDS", aws.ToString(in.Namespace))
	assert.Equal(t, "DatabaseConnections", aws.ToString(in.MetricName))
	assert.Equal(t, int32(86400), aws.ToInt32(in.Period))
	assert.Equal(t, []cwtypes.Statistic{cwtypes.StatisticSum}, in.Statistics)
	assert.Equal(t, testNow, aws.ToTime(in.EndTime))
	assert.Equal(t, testNow.AddDate(0, 0, -30), aws.ToTime(in.StartTime))
}

func TestFindIdleDatabasesDescribeError(t *testing.T) {
	r := &fakeRDS{describeErr: &smithy.GenericAPIError{Code: "AccessDenied"}}

	_, err := newTestService(r, &fakeCloudWatch{}).FindIdleDatabases(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, costengine.ErrUpstreamUnavailable)
}

func TestTagIdleDatabases(t *testing.T) {
	dbs := []model.IdleDatabase{
		{Identifier: "quiet", Arn: "arn:quiet"},
		{Identifier: "locked", Arn: "arn:locked"},
		{Identifier: "no-arn"},
	}
	r := &fakeRDS{tagErr: map[string]error{"arn:locked": errors.New("denied")}}

	got, err := newTestService(r, &fakeCloudWatch{}).TagIdleDatabases(context.Background(), dbs)
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.True(t, got[0].Tagged)
	assert.False(t, got[1].Tagged)
	assert.False(t, got[2].Tagged)
	assert.False(t, dbs[0].Tagged, "input must not be modified")

	require.Len(t, r.tagged, 1)
	assert.Equal(t, "arn:quiet", aws.ToString(r.tagged[0].ResourceName))
	assert.Equal(t, "finops:idle", aws.ToString(r.tagged[0].Tags[0].Key))
	assert.Equal(t, "true", aws.ToString(r.tagged[0].Tags[0].Value))
}

func TestTagIdleDatabasesRequiresKey(t *testing.T) {
	svc := newService(&fakeRDS{}, &fakeCloudWatch{}, Options{LookbackDays: 30}, logr.Discard(), time.Now)

	_, err := svc.TagIdleDatabases(context.Background(), []model.IdleDatabase{{Arn: "arn:x"}})
	require.Error(t, err)
}
