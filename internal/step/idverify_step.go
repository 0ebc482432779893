package step

import (
	"context"
	"strings"
	"time"
	"unicode"

	"loan-agent-be/internal/entity"
	"loan-agent-be/internal/repository/specification"
	"loan-agent-be/internal/repository/unitofwork"
	"loan-agent-be/pkg/dialog"
	"loan-agent-be/pkg/vision"
)

const phaseAwaitingImage = "awaiting_image"

// idTypeNormalization maps the vision model's id-type wording (lowercase)
// to the labels stored in the database.
var idTypeNormalization = map[string]string{
	"aadhar":                   "Aadhar",
	"aadhaar":                  "Aadhar",
	"pan":                      "PAN",
	"permanent account number": "PAN",
	"passport":                 "Passport",
}

// NormalizeIDType maps an extracted id-type string onto the stored label
// set; unrecognized values fall back to the capitalized raw text.
func NormalizeIDType(raw string) string {
	cleaned := strings.ToLower(strings.TrimSpace(raw))
	if normalized, ok := idTypeNormalization[cleaned]; ok {
		return normalized
	}
	return capitalize(cleaned)
}

// capitalize upper-cases the first rune and lower-cases the rest, so
// "voter id" becomes "Voter id".
func capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	for i := 1; i < len(runes); i++ {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}

// IDVerifyStep requests a photo of a government ID, extracts its fields
// through the vision provider, and either records the document (new
// customers) or matches it against the stored record. Any failure sends
// the conversation back to the greeting.
type IDVerifyStep struct {
	uowFactory     unitofwork.RepositoryFactory
	visionProvider vision.Provider
}

var _ dialog.Step = &IDVerifyStep{}

func NewIDVerifyStep(uowFactory unitofwork.RepositoryFactory, visionProvider vision.Provider) *IDVerifyStep {
	return &IDVerifyStep{
		uowFactory:     uowFactory,
		visionProvider: visionProvider,
	}
}

func (s *IDVerifyStep) Name() dialog.StepName {
	return dialog.StepIDVerify
}

func (s *IDVerifyStep) Execute(ctx context.Context, sc *dialog.Context, payload any) error {
	switch sc.Phase() {
	case dialog.PhaseStart:
		p, _ := payload.(dialog.VerifyPayload)
		sc.Set("customer_id", p.CustomerID)
		sc.Set("is_new", p.IsNew)
		sc.Emit(dialog.Message("For security, please upload an image of your government-issued ID."))
		sc.SetPhase(phaseAwaitingImage)
		sc.Emit(dialog.RequestFile())
		return nil

	case phaseAwaitingImage:
		imagePath, _ := payload.(string)
		sc.Emit(dialog.Message("🖼️ Analyzing ID... This may take a moment."))

		customerID := sc.GetInt64("customer_id")
		isNew := sc.GetBool("is_new")

		extraction, err := s.visionProvider.Extract(ctx, imagePath)
		if err != nil {
			s.fail(sc, "could not read the document")
			return nil
		}

		name := strings.TrimSpace(extraction.FullName)
		idType := NormalizeIDType(extraction.IDType)
		idNumber := strings.TrimSpace(extraction.IDNumber)
		if name == "" || idType == "" || idNumber == "" {
			s.fail(sc, "could not extract all required details from the ID")
			return nil
		}

		if isNew {
			return s.recordID(ctx, sc, customerID, idType, idNumber)
		}
		return s.verifyID(ctx, sc, customerID, name, idType, idNumber)
	}
	return nil
}

func (s *IDVerifyStep) recordID(ctx context.Context, sc *dialog.Context, customerID int64, idType, idNumber string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()
	err := uow.GovernmentIDRepository().CreateIfAbsent(ctx, &entity.GovernmentID{
		CustomerId: customerID,
		IdType:     idType,
		IdNumber:   idNumber,
		CreatedAt:  time.Now(),
	})
	if err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	sc.Emit(dialog.Message("✅ ID details captured."))
	sc.Emit(dialog.Transition(dialog.StepMainMenu, dialog.MenuPayload{CustomerID: customerID}))
	return nil
}

func (s *IDVerifyStep) verifyID(ctx context.Context, sc *dialog.Context, customerID int64, name, idType, idNumber string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	customer, err := uow.CustomerRepository().FindOne(ctx, specification.ByID{ID: customerID})
	if err != nil {
		return err
	}
	stored, err := uow.GovernmentIDRepository().FindOne(ctx, specification.ByCustomerID{CustomerID: customerID})
	if err != nil {
		return err
	}

	matches := customer != nil && stored != nil &&
		foldEqual(customer.FullName, name) &&
		foldEqual(stored.IdType, idType) &&
		foldEqual(stored.IdNumber, idNumber)
	if !matches {
		s.fail(sc, "the name, ID type, or ID number from the document does not match our records")
		return nil
	}

	sc.Emit(dialog.Message("✅ ID verification successful!"))
	sc.Emit(dialog.Transition(dialog.StepMainMenu, dialog.MenuPayload{CustomerID: customerID}))
	return nil
}

func (s *IDVerifyStep) fail(sc *dialog.Context, reason string) {
	sc.Emit(dialog.Message("❌ ID verification failed: " + reason + ". Let's try again from the beginning."))
	sc.Emit(dialog.Transition(dialog.StepGreetClassify, nil))
}

func foldEqual(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
