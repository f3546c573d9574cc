package main

import (
	"context"
	"fmt"

	"github.com/kbukum/railway/errors"
	"github.com/kbukum/railway/foodata"
)

// scriptedAPI is the static API client with an optional injected fault.
type scriptedAPI struct {
	foodata.StaticAPIClient
	err error
}

func (a scriptedAPI) GetSomeData(ctx context.Context) (foodata.SomeData, error) {
	if a.err != nil {
		return foodata.SomeData{}, a.err
	}
	return a.StaticAPIClient.GetSomeData(ctx)
}

// scriptedRepository is the static repository with optional injected faults.
type scriptedRepository struct {
	foodata.StaticRepository
	anotherErr error
	yetErr     error
}

func (r scriptedRepository) GetAnotherData(ctx context.Context, some foodata.SomeData) (foodata.AnotherData, error) {
	if r.anotherErr != nil {
		return foodata.AnotherData{}, r.anotherErr
	}
	return r.StaticRepository.GetAnotherData(ctx, some)
}

func (r scriptedRepository) GetYetAnotherData(ctx context.Context, another foodata.AnotherData) (foodata.YetAnotherData, error) {
	if r.yetErr != nil {
		return foodata.YetAnotherData{}, r.yetErr
	}
	return r.StaticRepository.GetYetAnotherData(ctx, another)
}

// scriptedCollaborators returns collaborators that fail at stage. The fault
// is the stage's known sentinel, or an unclassified internal error when
// unexpected is set.
func scriptedCollaborators(stage string, unexpected bool) (foodata.APIClient, foodata.Repository, error) {
	fault := func(known error) error {
		if unexpected {
			return errors.Internal(fmt.Errorf("simulated defect in %s", stage))
		}
		return known
	}

	api := scriptedAPI{}
	repo := scriptedRepository{}
	switch stage {
	case "":
		if unexpected {
			return nil, nil, errors.InvalidInput("unexpected", "requires --fail")
		}
	case foodata.StageGetSomeData:
		api.err = fault(foodata.ErrSomeDataUnavailable)
	case foodata.StageGetAnotherData:
		repo.anotherErr = fault(foodata.ErrAnotherDataFailed)
	case foodata.StageGetYetAnotherData:
		repo.yetErr = fault(foodata.ErrYetAnotherDataUnavailable)
	default:
		return nil, nil, errors.InvalidInput("fail", fmt.Sprintf("unknown stage %q", stage))
	}
	return api, repo, nil
}
