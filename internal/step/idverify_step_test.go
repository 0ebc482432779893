package step

import (
	"context"
	"fmt"
	"testing"

	"loan-agent-be/internal/entity"
	"loan-agent-be/internal/repository/specification"
	"loan-agent-be/pkg/dialog"
	"loan-agent-be/pkg/vision"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeIDType(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{raw: "aadhaar", expected: "Aadhar"},
		{raw: " AADHAAR ", expected: "Aadhar"},
		{raw: "Aadhaar", expected: "Aadhar"},
		{raw: "aadhar", expected: "Aadhar"},
		{raw: "pan", expected: "PAN"},
		{raw: "Permanent Account Number", expected: "PAN"},
		{raw: "passport", expected: "Passport"},
		{raw: "Voter ID", expected: "Voter id"},
		{raw: "driving licence", expected: "Driving licence"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeIDType(tt.raw))
		})
	}
}

func TestIDVerifyStep_RequestsImage(t *testing.T) {
	s := NewIDVerifyStep(newTestFactory(), &fakeVision{})
	state := map[string]any{}

	evs := execute(t, s, state, dialog.VerifyPayload{CustomerID: 1, IsNew: true})

	assert.Equal(t, dialog.EventRequestFile, lastEvent(t, evs).Kind)
	assert.Equal(t, phaseAwaitingImage, dialog.NewContext(state).Phase())
}

func TestIDVerifyStep_NewCustomerStoresID(t *testing.T) {
	factory := newTestFactory()
	customer := seedCustomer(t, factory, entity.Customer{
		FullName: "Bob Builder",
		Email:    "bob@example.com",
	})
	s := NewIDVerifyStep(factory, &fakeVision{
		extraction: &vision.IDExtraction{
			FullName: "BOB BUILDER",
			IDType:   "aadhaar",
			IDNumber: "123412341234",
		},
	})

	state := map[string]any{
		"phase":       phaseAwaitingImage,
		"customer_id": customer.Id,
		"is_new":      true,
	}
	evs := execute(t, s, state, "/tmp/id.png")

	last := lastEvent(t, evs)
	require.Equal(t, dialog.EventTransition, last.Kind)
	assert.Equal(t, dialog.StepMainMenu, last.Next)

	uow := factory.NewUnitOfWork(context.Background())
	stored, err := uow.GovernmentIDRepository().FindOne(context.Background(),
		specification.ByCustomerID{CustomerID: customer.Id})
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Aadhar", stored.IdType)
	assert.Equal(t, "123412341234", stored.IdNumber)
}

func TestIDVerifyStep_ExistingCustomerMatch(t *testing.T) {
	factory := newTestFactory()
	customer := seedCustomer(t, factory, entity.Customer{
		FullName: "Alice Smith",
		Email:    "alice@example.com",
	})
	seedGovernmentID(t, factory, entity.GovernmentID{
		CustomerId: customer.Id,
		IdType:     "PAN",
		IdNumber:   "P987654321",
	})

	// Case and surrounding whitespace differences must not fail the match.
	s := NewIDVerifyStep(factory, &fakeVision{
		extraction: &vision.IDExtraction{
			FullName: "  ALICE smith ",
			IDType:   "pan",
			IDNumber: " p987654321 ",
		},
	})

	state := map[string]any{
		"phase":       phaseAwaitingImage,
		"customer_id": customer.Id,
		"is_new":      false,
	}
	evs := execute(t, s, state, "/tmp/id.png")

	last := lastEvent(t, evs)
	require.Equal(t, dialog.EventTransition, last.Kind)
	assert.Equal(t, dialog.StepMainMenu, last.Next)
	payload, ok := last.Payload.(dialog.MenuPayload)
	require.True(t, ok)
	assert.Equal(t, customer.Id, payload.CustomerID)
}

func TestIDVerifyStep_MismatchRestartsAtGreeting(t *testing.T) {
	tests := []struct {
		name       string
		extraction vision.IDExtraction
	}{
		{
			name:       "name mismatch",
			extraction: vision.IDExtraction{FullName: "Someone Else", IDType: "PAN", IDNumber: "P987654321"},
		},
		{
			name:       "type mismatch",
			extraction: vision.IDExtraction{FullName: "Alice Smith", IDType: "passport", IDNumber: "P987654321"},
		},
		{
			name:       "number mismatch",
			extraction: vision.IDExtraction{FullName: "Alice Smith", IDType: "PAN", IDNumber: "X000000000"},
		},
		{
			name:       "missing field",
			extraction: vision.IDExtraction{FullName: "Alice Smith", IDType: "PAN", IDNumber: "  "},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factory := newTestFactory()
			customer := seedCustomer(t, factory, entity.Customer{
				FullName: "Alice Smith",
				Email:    "alice@example.com",
			})
			seedGovernmentID(t, factory, entity.GovernmentID{
				CustomerId: customer.Id,
				IdType:     "PAN",
				IdNumber:   "P987654321",
			})
			extraction := tt.extraction
			s := NewIDVerifyStep(factory, &fakeVision{extraction: &extraction})

			state := map[string]any{
				"phase":       phaseAwaitingImage,
				"customer_id": customer.Id,
				"is_new":      false,
			}
			evs := execute(t, s, state, "/tmp/id.png")

			last := lastEvent(t, evs)
			require.Equal(t, dialog.EventTransition, last.Kind)
			assert.Equal(t, dialog.StepGreetClassify, last.Next)
		})
	}
}

func TestIDVerifyStep_ExtractionErrorRestartsAtGreeting(t *testing.T) {
	factory := newTestFactory()
	s := NewIDVerifyStep(factory, &fakeVision{err: fmt.Errorf("unreadable image")})

	state := map[string]any{
		"phase":       phaseAwaitingImage,
		"customer_id": int64(1),
		"is_new":      false,
	}
	evs := execute(t, s, state, "/tmp/id.png")

	last := lastEvent(t, evs)
	require.Equal(t, dialog.EventTransition, last.Kind)
	assert.Equal(t, dialog.StepGreetClassify, last.Next)
}
