package foodata

import "context"

// APIClient fetches some data.
type APIClient interface {
	GetSomeData(ctx context.Context) (SomeData, error)
}

// Repository derives the later data from earlier data.
type Repository interface {
	GetAnotherData(ctx context.Context, some SomeData) (AnotherData, error)
	GetYetAnotherData(ctx context.Context, another AnotherData) (YetAnotherData, error)
}

// StaticAPIClient always returns "some".
type StaticAPIClient struct{}

func (StaticAPIClient) GetSomeData(context.Context) (SomeData, error) {
	return SomeData{Value: "some"}, nil
}

// StaticRepository always returns "another" and "yetAnother".
type StaticRepository struct{}

func (StaticRepository) GetAnotherData(context.Context, SomeData) (AnotherData, error) {
	return AnotherData{Value: "another"}, nil
}

func (StaticRepository) GetYetAnotherData(context.Context, AnotherData) (YetAnotherData, error) {
	return YetAnotherData{Value: "yetAnother"}, nil
}
