package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"revebot.backend/internal/domain/entities"
	domainerrors "revebot.backend/internal/domain/errors"
	"revebot.backend/internal/domain/repositories"
	"revebot.backend/pkg/logger"
)

// SetupUsecase orchestrates the onboarding wizard: it loads the merchant,
// validates each step, applies the step gate and package transition policy,
// persists the record and triggers downstream provisioning on submission.
type SetupUsecase struct {
	merchantRepo  repositories.MerchantRepository
	queue         repositories.TaskQueue
	mailer        repositories.Mailer
	widget        repositories.ChatWidgetRegistrar
	policy        PackagePolicy
	analysisQueue string
}

// NewSetupUsecase creates a new setup usecase
func NewSetupUsecase(
	merchantRepo repositories.MerchantRepository,
	queue repositories.TaskQueue,
	mailer repositories.Mailer,
	widget repositories.ChatWidgetRegistrar,
	policy PackagePolicy,
	analysisQueue string,
) *SetupUsecase {
	return &SetupUsecase{
		merchantRepo:  merchantRepo,
		queue:         queue,
		mailer:        mailer,
		widget:        widget,
		policy:        policy,
		analysisQueue: analysisQueue,
	}
}

func stepPath(step int) string {
	return fmt.Sprintf("/setup/step%d", step)
}

// gate loads the merchant and enforces the step precondition. A blocked step
// is not an error: the result carries the redirect target of the step the
// merchant should be on instead.
func (s *SetupUsecase) gate(ctx context.Context, merchantID uuid.UUID, step int) (*entities.Merchant, *entities.StepResult, error) {
	merchant, err := s.merchantRepo.GetByID(ctx, merchantID)
	if err != nil {
		return nil, nil, err
	}
	if !CanEnter(step, merchant.Progress) {
		return nil, &entities.StepResult{Redirect: stepPath(RedirectStep(merchant.Progress))}, nil
	}
	return merchant, nil, nil
}

// Step1Form returns the business-info screen prefill
func (s *SetupUsecase) Step1Form(ctx context.Context, merchantID uuid.UUID) (*entities.Step1Form, *entities.StepResult, error) {
	merchant, blocked, err := s.gate(ctx, merchantID, 1)
	if err != nil || blocked != nil {
		return nil, blocked, err
	}

	awayMessage := merchant.AwayMessage
	if awayMessage == "" {
		awayMessage = entities.DefaultAwayMessage
	}

	return &entities.Step1Form{
		Business:    merchant.BusinessName,
		Phone:       merchant.Phone,
		Phones:      merchant.Phones,
		AwayMessage: awayMessage,
	}, nil, nil
}

// SubmitStep1 validates and stores the business-info screen
func (s *SetupUsecase) SubmitStep1(ctx context.Context, merchantID uuid.UUID, input *entities.Step1Input) (*entities.StepResult, error) {
	merchant, blocked, err := s.gate(ctx, merchantID, 1)
	if err != nil {
		return nil, err
	}
	if blocked != nil {
		return blocked, nil
	}

	if errs := validateStep1(input); errs.Any() {
		return nil, errs
	}

	phones := make([]string, 0, len(input.Phones))
	for _, phone := range input.Phones {
		phones = append(phones, strings.TrimSpace(phone))
	}

	merchant.BusinessName = input.Business
	merchant.Phone = strings.TrimSpace(input.Phone)
	merchant.Phones = phones
	merchant.AwayMessage = input.AwayMessage

	prior := merchant.Progress
	merchant.Progress = Advance(prior, 1)

	if err := s.merchantRepo.Update(ctx, merchant); err != nil {
		return nil, err
	}

	return &entities.StepResult{Redirect: input.Next, Saved: ShowSaved(prior)}, nil
}

// Step2Form returns the notification-channels screen prefill
func (s *SetupUsecase) Step2Form(ctx context.Context, merchantID uuid.UUID) (*entities.Step2Form, *entities.StepResult, error) {
	merchant, blocked, err := s.gate(ctx, merchantID, 2)
	if err != nil || blocked != nil {
		return nil, blocked, err
	}

	return &entities.Step2Form{
		SmsEnabled:       merchant.SmsEnabled,
		SmsTemplate:      merchant.SmsTemplate,
		FacebookEnabled:  merchant.FacebookEnabled,
		TwitterEnabled:   merchant.TwitterEnabled,
		AgentEnabled:     merchant.AgentEnabled,
		CheckoutInterval: merchant.CheckoutInterval,
	}, nil, nil
}

// SubmitStep2 stores the notification-channel toggles
func (s *SetupUsecase) SubmitStep2(ctx context.Context, merchantID uuid.UUID, input *entities.Step2Input) (*entities.StepResult, error) {
	merchant, blocked, err := s.gate(ctx, merchantID, 2)
	if err != nil {
		return nil, err
	}
	if blocked != nil {
		return blocked, nil
	}

	merchant.SmsEnabled = input.SmsEnabled
	merchant.SmsTemplate = input.SmsTemplate
	merchant.FacebookEnabled = input.FacebookEnabled
	merchant.TwitterEnabled = input.TwitterEnabled
	merchant.AgentEnabled = input.AgentEnabled
	merchant.CheckoutInterval = input.CheckoutInterval

	prior := merchant.Progress
	merchant.Progress = Advance(prior, 2)

	if err := s.merchantRepo.Update(ctx, merchant); err != nil {
		return nil, err
	}

	return &entities.StepResult{Redirect: input.Next, Saved: ShowSaved(prior)}, nil
}

// Step3Form returns the chat-tier screen prefill
func (s *SetupUsecase) Step3Form(ctx context.Context, merchantID uuid.UUID) (*entities.Step3Form, *entities.StepResult, error) {
	merchant, blocked, err := s.gate(ctx, merchantID, 3)
	if err != nil || blocked != nil {
		return nil, blocked, err
	}

	defaults := entities.DefaultTiers()
	tiers := make([][]entities.TierEntry, entities.TierCount)
	for i := 0; i < entities.TierCount; i++ {
		if i < len(merchant.Tiers) && len(merchant.Tiers[i]) > 0 {
			tiers[i] = merchant.Tiers[i]
		} else {
			tiers[i] = defaults[i]
		}
	}

	return &entities.Step3Form{
		ChatEnabled: merchant.ChatEnabled,
		Tiers:       tiers,
	}, nil, nil
}

// SubmitStep3 stores the chat configuration. The tier payload must decode to
// exactly TierCount ordered lists; anything else aborts without a partial
// write. Once the merchant is fully set up the chat widget registration is
// refreshed to reflect the current chat state.
func (s *SetupUsecase) SubmitStep3(ctx context.Context, merchantID uuid.UUID, input *entities.Step3Input) (*entities.StepResult, error) {
	merchant, blocked, err := s.gate(ctx, merchantID, 3)
	if err != nil {
		return nil, err
	}
	if blocked != nil {
		return blocked, nil
	}

	if len(input.Tiers) != entities.TierCount {
		return nil, domainerrors.ErrMalformedTiers
	}

	merchant.ChatEnabled = input.ChatEnabled
	merchant.Tiers = input.Tiers

	prior := merchant.Progress
	merchant.Progress = Advance(prior, 3)

	if err := s.merchantRepo.Update(ctx, merchant); err != nil {
		return nil, err
	}

	if merchant.Progress >= StepCount {
		if err := s.widget.Register(ctx, merchant, true, merchant.ChatEnabled); err != nil {
			logger.Warn(ctx, "chat widget registration failed",
				zap.String("merchant_id", merchant.ID.String()), zap.Error(err))
		}
	}

	return &entities.StepResult{Redirect: input.Next, Saved: ShowSaved(prior)}, nil
}

// Step4Form returns the package-selection screen prefill
func (s *SetupUsecase) Step4Form(ctx context.Context, merchantID uuid.UUID) (*entities.Step4Form, *entities.StepResult, error) {
	merchant, blocked, err := s.gate(ctx, merchantID, 4)
	if err != nil || blocked != nil {
		return nil, blocked, err
	}

	form := &entities.Step4Form{}
	if merchant.Progress >= StepCount {
		form.Package = merchant.Package
		form.NextPackage = merchant.PendingPackage
		if form.NextPackage == "" {
			form.NextPackage = merchant.Package
		}
		form.Agree = true
	}
	return form, nil, nil
}

// SubmitStep4 finishes onboarding for a new merchant or routes a package
// change through the transition policy for one already onboarded. The
// submit-for-review marker in Next moves a new merchant to pending and, only
// after that transition is durably saved, triggers the analysis task and the
// registration mail.
func (s *SetupUsecase) SubmitStep4(ctx context.Context, merchantID uuid.UUID, input *entities.Step4Input) (*entities.StepResult, error) {
	merchant, blocked, err := s.gate(ctx, merchantID, 4)
	if err != nil {
		return nil, err
	}
	if blocked != nil {
		return blocked, nil
	}

	prior := merchant.Progress

	if !merchant.Onboarded() {
		if errs := validateStep4(input); errs.Any() {
			return nil, errs
		}
		merchant.Package = input.Package
		merchant.Progress = Advance(prior, StepCount)
	} else {
		now := time.Now()
		inTrial := s.policy.InTrial(merchant.CreatedAt, now)
		change := s.policy.Decide(merchant.Package, input.NextPackage, inTrial, now)
		merchant.Package = change.Package
		merchant.PendingPackage = change.PendingPackage
		merchant.PendingSince = change.PendingSince
	}

	if input.Next == entities.NextSetup {
		if !merchant.Onboarded() {
			merchant.Status = entities.MerchantStatusPending
			if err := s.merchantRepo.Update(ctx, merchant); err != nil {
				return nil, err
			}
			s.provision(ctx, merchant)
			return &entities.StepResult{Redirect: entities.RedirectPending}, nil
		}

		if err := s.merchantRepo.Update(ctx, merchant); err != nil {
			return nil, err
		}
		return &entities.StepResult{Redirect: entities.RedirectDashboard}, nil
	}

	if err := s.merchantRepo.Update(ctx, merchant); err != nil {
		return nil, err
	}

	return &entities.StepResult{Redirect: input.Next, Saved: ShowSaved(prior)}, nil
}

// provision fires the post-registration side effects. The merchant record is
// already saved at this point; queue and mail are best effort.
func (s *SetupUsecase) provision(ctx context.Context, merchant *entities.Merchant) {
	if err := s.queue.Enqueue(ctx, s.analysisQueue, merchant.ID.String()); err != nil {
		logger.Error(ctx, "failed to enqueue merchant analysis",
			zap.String("merchant_id", merchant.ID.String()), zap.Error(err))
	}
	if err := s.mailer.SendMerchantRegistered(ctx, merchant); err != nil {
		logger.Error(ctx, "failed to send registration mail",
			zap.String("merchant_id", merchant.ID.String()), zap.Error(err))
	}
}

// SetupStatus summarises where the merchant is in onboarding
func (s *SetupUsecase) SetupStatus(ctx context.Context, merchantID uuid.UUID) (*entities.SetupStatusResponse, error) {
	merchant, err := s.merchantRepo.GetByID(ctx, merchantID)
	if err != nil {
		return nil, err
	}

	return &entities.SetupStatusResponse{
		MerchantID:     merchant.ID,
		Status:         merchant.Status,
		Progress:       merchant.Progress,
		Package:        merchant.Package,
		PendingPackage: merchant.PendingPackage,
		PendingSince:   merchant.PendingSince,
		Message:        statusMessage(merchant.Status),
	}, nil
}

func statusMessage(status entities.MerchantStatus) string {
	switch status {
	case entities.MerchantStatusNew:
		return "Finish setup to submit your store for review"
	case entities.MerchantStatusPending:
		return "Your store is being analysed; we will be in touch shortly"
	case entities.MerchantStatusActive:
		return "Your store is live"
	case entities.MerchantStatusSuspended:
		return "Your account has been suspended"
	case entities.MerchantStatusRejected:
		return "Your application was rejected"
	default:
		return ""
	}
}
