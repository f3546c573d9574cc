package foodata

import (
	"context"

	"github.com/kbukum/railway/fault"
	"github.com/kbukum/railway/pipeline"
	"github.com/kbukum/railway/result"
)

// PipelineName names the GetFooData pipeline in spans, metrics and logs.
const PipelineName = "foo-data"

// Stage names, in execution order.
const (
	StageGetSomeData       = "get_some_data"
	StageGetAnotherData    = "get_another_data"
	StageGetYetAnotherData = "get_yet_another_data"
)

// Service produces FooData from an APIClient and a Repository.
type Service struct {
	api        APIClient
	repo       Repository
	classifier *fault.Classifier[ErrorKind]
	pipeline   *pipeline.Pipeline[ErrorKind]
	chain      *pipeline.Stage[FooData, ErrorKind]
}

// NewService creates a Service. opts configure the pipeline behind
// GetFooData.
func NewService(api APIClient, repo Repository, opts ...pipeline.Option) *Service {
	s := &Service{
		api:        api,
		repo:       repo,
		classifier: NewClassifier(),
	}
	s.pipeline = pipeline.New(PipelineName, s.classifier, opts...)

	some := pipeline.Start(s.pipeline, StageGetSomeData, api.GetSomeData)
	another := pipeline.Then(some, StageGetAnotherData, repo.GetAnotherData)
	yetAnother := pipeline.Then(another, StageGetYetAnotherData, repo.GetYetAnotherData)
	s.chain = pipeline.Map(yetAnother, NewFooData)
	return s
}

// GetFooData runs the chain. A Failure names the first stage that failed
// with a known fault. A non-nil error is an unexpected fault, returned
// unchanged.
func (s *Service) GetFooData(ctx context.Context) (result.Result[FooData, ErrorKind], error) {
	return s.chain.Run(ctx)
}

// GetFooDataDirect runs the same chain as GetFooData without a pipeline: no
// telemetry, no retries and no cancellation.
func (s *Service) GetFooDataDirect() (result.Result[FooData, ErrorKind], error) {
	ctx := context.Background()

	some, err := fault.Wrap(s.classifier, func() (SomeData, error) {
		return s.api.GetSomeData(ctx)
	})
	another, err := fault.Chain(some, err, fault.Lift(s.classifier, func(d SomeData) (AnotherData, error) {
		return s.repo.GetAnotherData(ctx, d)
	}))
	yetAnother, err := fault.Chain(another, err, fault.Lift(s.classifier, func(d AnotherData) (YetAnotherData, error) {
		return s.repo.GetYetAnotherData(ctx, d)
	}))
	if err != nil {
		return result.Result[FooData, ErrorKind]{}, err
	}
	return result.Map(yetAnother, NewFooData), nil
}

// Shutdown releases telemetry owned by the service's pipeline.
func (s *Service) Shutdown(ctx context.Context) error {
	return s.pipeline.Shutdown(ctx)
}

// Describe renders r as a message for the user.
func Describe(r result.Result[FooData, ErrorKind]) string {
	return result.Fold(r,
		func(foo FooData) string {
			return "foo data: " + foo.Value
		},
		func(kind ErrorKind) string {
			switch kind {
			case SourceUnavailable:
				return "some data is unavailable, try again later"
			case TransformFailed:
				return "another data could not be derived"
			case DownstreamUnavailable:
				return "yet another data is unavailable, try again later"
			default:
				return "foo data failed: " + kind.String()
			}
		},
	)
}
