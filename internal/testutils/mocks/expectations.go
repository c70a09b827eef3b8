// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"context"
	"testing"

	"go.uber.org/mock/gomock"

	dataforgedmock "github.com/KirkDiggler/ironsworn-content/internal/clients/dataforged/mock"
	"github.com/KirkDiggler/ironsworn-content/internal/entities/dataforged"
	"github.com/KirkDiggler/ironsworn-content/internal/testutils"
)

// ExpectFetchAll makes every FetchAll call return a fresh copy of the
// fixture documents. Processors rewrite documents in place, so repeated
// runs must not share a set.
func ExpectFetchAll(t *testing.T, mockClient *dataforgedmock.MockClient) *gomock.Call {
	return mockClient.EXPECT().
		FetchAll(gomock.Any(), dataforged.Names).
		DoAndReturn(func(_ context.Context, _ []dataforged.Name) (*dataforged.Set, error) {
			return testutils.CreateTestDocumentSet(t), nil
		})
}

// ExpectFetchAllError makes the next FetchAll call fail with err
func ExpectFetchAllError(mockClient *dataforgedmock.MockClient, err error) *gomock.Call {
	return mockClient.EXPECT().
		FetchAll(gomock.Any(), dataforged.Names).
		Return(nil, err)
}
