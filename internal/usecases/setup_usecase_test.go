package usecases_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"revebot.backend/internal/domain/entities"
	domainerrors "revebot.backend/internal/domain/errors"
	"revebot.backend/internal/usecases"
	"revebot.backend/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init("development")
	os.Exit(m.Run())
}

type setupFixture struct {
	repo   *MockMerchantRepository
	queue  *MockTaskQueue
	mailer *MockMailer
	widget *MockWidgetRegistrar
	uc     *usecases.SetupUsecase
}

func newSetupFixture() *setupFixture {
	f := &setupFixture{
		repo:   new(MockMerchantRepository),
		queue:  new(MockTaskQueue),
		mailer: new(MockMailer),
		widget: new(MockWidgetRegistrar),
	}
	f.uc = usecases.NewSetupUsecase(f.repo, f.queue, f.mailer, f.widget,
		usecases.PackagePolicy{TrialDays: 14}, "revebot-shop")
	return f
}

func newMerchant(progress int) *entities.Merchant {
	return &entities.Merchant{
		ID:        uuid.New(),
		Domain:    "acme.example.com",
		Progress:  progress,
		Status:    entities.MerchantStatusNew,
		CreatedAt: time.Now().Add(-48 * time.Hour),
	}
}

func validStep1Input() *entities.Step1Input {
	return &entities.Step1Input{
		Business:    "Acme Stores",
		Phone:       "+12025550123",
		Phones:      []string{"+(202)5550124"},
		AwayMessage: "We are away",
		Next:        "/setup/step2",
	}
}

func TestSubmitStep1_BlockedByGate(t *testing.T) {
	f := newSetupFixture()
	merchant := newMerchant(0)
	merchant.Progress = 0
	f.repo.On("GetByID", mock.Anything, merchant.ID).Return(merchant, nil)

	// step 2 requires progress >= 1
	result, err := f.uc.SubmitStep2(context.Background(), merchant.ID, &entities.Step2Input{Next: "/setup/step3"})

	require.NoError(t, err)
	assert.Equal(t, "/setup/step1", result.Redirect)
	assert.False(t, result.Saved)
	f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestSubmitStep1_MerchantNotFound(t *testing.T) {
	f := newSetupFixture()
	id := uuid.New()
	f.repo.On("GetByID", mock.Anything, id).Return(nil, domainerrors.ErrNotFound)

	result, err := f.uc.SubmitStep1(context.Background(), id, validStep1Input())

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestSubmitStep1_ValidationFailureDoesNotPersist(t *testing.T) {
	f := newSetupFixture()
	merchant := newMerchant(0)
	f.repo.On("GetByID", mock.Anything, merchant.ID).Return(merchant, nil)

	input := validStep1Input()
	input.Business = ""
	input.Phones = []string{"not-a-phone"}

	result, err := f.uc.SubmitStep1(context.Background(), merchant.ID, input)

	assert.Nil(t, result)
	var fieldErrs domainerrors.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "The Business Name field is required.", fieldErrs["business"])
	assert.Contains(t, fieldErrs, "phones.0")
	f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestSubmitStep1_SavesAndAdvances(t *testing.T) {
	f := newSetupFixture()
	merchant := newMerchant(0)
	f.repo.On("GetByID", mock.Anything, merchant.ID).Return(merchant, nil)
	f.repo.On("Update", mock.Anything, mock.MatchedBy(func(m *entities.Merchant) bool {
		return m.BusinessName == "Acme Stores" && m.Progress == 1
	})).Return(nil)

	result, err := f.uc.SubmitStep1(context.Background(), merchant.ID, validStep1Input())

	require.NoError(t, err)
	assert.Equal(t, "/setup/step2", result.Redirect)
	assert.False(t, result.Saved)
	f.repo.AssertExpectations(t)
}

func TestSubmitStep1_FullySetUpShowsSavedAck(t *testing.T) {
	f := newSetupFixture()
	merchant := newMerchant(4)
	f.repo.On("GetByID", mock.Anything, merchant.ID).Return(merchant, nil)
	f.repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	input := validStep1Input()
	input.Next = "/setup/step1"
	result, err := f.uc.SubmitStep1(context.Background(), merchant.ID, input)

	require.NoError(t, err)
	assert.True(t, result.Saved)
	assert.Equal(t, 4, merchant.Progress)
}

func TestSubmitStep2_PersistsToggles(t *testing.T) {
	f := newSetupFixture()
	merchant := newMerchant(1)
	f.repo.On("GetByID", mock.Anything, merchant.ID).Return(merchant, nil)
	f.repo.On("Update", mock.Anything, mock.MatchedBy(func(m *entities.Merchant) bool {
		return m.SmsEnabled && m.CheckoutInterval == 30 && m.Progress == 2
	})).Return(nil)

	result, err := f.uc.SubmitStep2(context.Background(), merchant.ID, &entities.Step2Input{
		SmsEnabled:       true,
		SmsTemplate:      "Your order is waiting",
		CheckoutInterval: 30,
		Next:             "/setup/step3",
	})

	require.NoError(t, err)
	assert.Equal(t, "/setup/step3", result.Redirect)
	f.repo.AssertExpectations(t)
}

func TestSubmitStep3_MalformedTiers(t *testing.T) {
	f := newSetupFixture()
	merchant := newMerchant(2)
	f.repo.On("GetByID", mock.Anything, merchant.ID).Return(merchant, nil)

	result, err := f.uc.SubmitStep3(context.Background(), merchant.ID, &entities.Step3Input{
		Tiers: [][]entities.TierEntry{{{Label: "Sales", Text: "hi"}}},
		Next:  "/setup/step4",
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domainerrors.ErrMalformedTiers)
	f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func threeTiers() [][]entities.TierEntry {
	return [][]entities.TierEntry{
		{{Label: "Sales", Text: "Talk to sales"}},
		{{Label: "Support", Text: "Talk to support"}},
		{{Label: "Returns", Text: "Start a return"}},
	}
}

func TestSubmitStep3_NoWidgetRefreshDuringSetup(t *testing.T) {
	f := newSetupFixture()
	merchant := newMerchant(2)
	f.repo.On("GetByID", mock.Anything, merchant.ID).Return(merchant, nil)
	f.repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	result, err := f.uc.SubmitStep3(context.Background(), merchant.ID, &entities.Step3Input{
		ChatEnabled: true,
		Tiers:       threeTiers(),
		Next:        "/setup/step4",
	})

	require.NoError(t, err)
	assert.Equal(t, 3, merchant.Progress)
	assert.Equal(t, "/setup/step4", result.Redirect)
	f.widget.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitStep3_RefreshesWidgetWhenFullySetUp(t *testing.T) {
	f := newSetupFixture()
	merchant := newMerchant(4)
	f.repo.On("GetByID", mock.Anything, merchant.ID).Return(merchant, nil)
	f.repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	f.widget.On("Register", mock.Anything, merchant, true, true).Return(nil)

	result, err := f.uc.SubmitStep3(context.Background(), merchant.ID, &entities.Step3Input{
		ChatEnabled: true,
		Tiers:       threeTiers(),
		Next:        "/setup/step3",
	})

	require.NoError(t, err)
	assert.True(t, result.Saved)
	f.widget.AssertExpectations(t)
}

func TestSubmitStep3_WidgetFailureDoesNotFailSubmission(t *testing.T) {
	f := newSetupFixture()
	merchant := newMerchant(4)
	f.repo.On("GetByID", mock.Anything, merchant.ID).Return(merchant, nil)
	f.repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	f.widget.On("Register", mock.Anything, merchant, true, false).Return(errors.New("script tag api down"))

	result, err := f.uc.SubmitStep3(context.Background(), merchant.ID, &entities.Step3Input{
		Tiers: threeTiers(),
		Next:  "/setup/step3",
	})

	require.NoError(t, err)
	assert.True(t, result.Saved)
}

func TestSubmitStep4_RequiresPackageAndAgreement(t *testing.T) {
	f := newSetupFixture()
	merchant := newMerchant(3)
	f.repo.On("GetByID", mock.Anything, merchant.ID).Return(merchant, nil)

	result, err := f.uc.SubmitStep4(context.Background(), merchant.ID, &entities.Step4Input{Next: entities.NextSetup})

	assert.Nil(t, result)
	var fieldErrs domainerrors.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "You should select a package.", fieldErrs["package"])
	assert.Equal(t, "Please, agree with User Software License Agreement.", fieldErrs["agree"])
	f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestSubmitStep4_SubmitForReviewProvisions(t *testing.T) {
	f := newSetupFixture()
	merchant := newMerchant(3)
	f.repo.On("GetByID", mock.Anything, merchant.ID).Return(merchant, nil)
	f.repo.On("Update", mock.Anything, mock.MatchedBy(func(m *entities.Merchant) bool {
		return m.Status == entities.MerchantStatusPending && m.Package == "standard" && m.Progress == 4
	})).Return(nil)
	f.queue.On("Enqueue", mock.Anything, "revebot-shop", merchant.ID.String()).Return(nil)
	f.mailer.On("SendMerchantRegistered", mock.Anything, merchant).Return(nil)

	result, err := f.uc.SubmitStep4(context.Background(), merchant.ID, &entities.Step4Input{
		Package: "standard",
		Agree:   true,
		Next:    entities.NextSetup,
	})

	require.NoError(t, err)
	assert.Equal(t, entities.RedirectPending, result.Redirect)
	f.queue.AssertNumberOfCalls(t, "Enqueue", 1)
	f.mailer.AssertNumberOfCalls(t, "SendMerchantRegistered", 1)
}

func TestSubmitStep4_SaveFailureSkipsProvisioning(t *testing.T) {
	f := newSetupFixture()
	merchant := newMerchant(3)
	f.repo.On("GetByID", mock.Anything, merchant.ID).Return(merchant, nil)
	f.repo.On("Update", mock.Anything, mock.Anything).Return(domainerrors.ErrPersistenceFailed)

	result, err := f.uc.SubmitStep4(context.Background(), merchant.ID, &entities.Step4Input{
		Package: "standard",
		Agree:   true,
		Next:    entities.NextSetup,
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domainerrors.ErrPersistenceFailed)
	f.queue.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything, mock.Anything)
	f.mailer.AssertNotCalled(t, "SendMerchantRegistered", mock.Anything, mock.Anything)
}

func TestSubmitStep4_ProvisioningFailureStillRedirects(t *testing.T) {
	f := newSetupFixture()
	merchant := newMerchant(3)
	f.repo.On("GetByID", mock.Anything, merchant.ID).Return(merchant, nil)
	f.repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	f.queue.On("Enqueue", mock.Anything, "revebot-shop", merchant.ID.String()).Return(errors.New("redis down"))
	f.mailer.On("SendMerchantRegistered", mock.Anything, merchant).Return(errors.New("smtp down"))

	result, err := f.uc.SubmitStep4(context.Background(), merchant.ID, &entities.Step4Input{
		Package: "standard",
		Agree:   true,
		Next:    entities.NextSetup,
	})

	require.NoError(t, err)
	assert.Equal(t, entities.RedirectPending, result.Redirect)
}

func TestSubmitStep4_TrialChangeAppliesImmediately(t *testing.T) {
	f := newSetupFixture()
	merchant := newMerchant(4)
	merchant.Status = entities.MerchantStatusActive
	merchant.Package = "standard"
	merchant.PendingPackage = "premium"
	merchant.PendingSince = null.TimeFrom(time.Now())
	merchant.CreatedAt = time.Now().Add(-72 * time.Hour)
	f.repo.On("GetByID", mock.Anything, merchant.ID).Return(merchant, nil)
	f.repo.On("Update", mock.Anything, mock.MatchedBy(func(m *entities.Merchant) bool {
		return m.Package == "starter" && m.PendingPackage == "" && !m.PendingSince.Valid
	})).Return(nil)

	result, err := f.uc.SubmitStep4(context.Background(), merchant.ID, &entities.Step4Input{
		NextPackage: "starter",
		Next:        entities.NextSetup,
	})

	require.NoError(t, err)
	assert.Equal(t, entities.RedirectDashboard, result.Redirect)
	f.queue.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything, mock.Anything)
	f.mailer.AssertNotCalled(t, "SendMerchantRegistered", mock.Anything, mock.Anything)
}

func TestSubmitStep4_PostTrialChangeIsScheduled(t *testing.T) {
	f := newSetupFixture()
	merchant := newMerchant(4)
	merchant.Status = entities.MerchantStatusActive
	merchant.Package = "standard"
	merchant.CreatedAt = time.Now().AddDate(0, -2, 0)
	f.repo.On("GetByID", mock.Anything, merchant.ID).Return(merchant, nil)
	f.repo.On("Update", mock.Anything, mock.MatchedBy(func(m *entities.Merchant) bool {
		if m.Package != "standard" || m.PendingPackage != "premium" || !m.PendingSince.Valid {
			return false
		}
		at := m.PendingSince.Time
		return at.Day() == 1 && at.Hour() == 0 && at.Location() == time.UTC
	})).Return(nil)

	result, err := f.uc.SubmitStep4(context.Background(), merchant.ID, &entities.Step4Input{
		NextPackage: "premium",
		Next:        entities.NextSetup,
	})

	require.NoError(t, err)
	assert.Equal(t, entities.RedirectDashboard, result.Redirect)
	f.repo.AssertExpectations(t)
}

func TestSubmitStep4_PostTrialSamePackageCancelsPending(t *testing.T) {
	f := newSetupFixture()
	merchant := newMerchant(4)
	merchant.Status = entities.MerchantStatusActive
	merchant.Package = "standard"
	merchant.PendingPackage = "premium"
	merchant.PendingSince = null.TimeFrom(time.Now())
	merchant.CreatedAt = time.Now().AddDate(0, -2, 0)
	f.repo.On("GetByID", mock.Anything, merchant.ID).Return(merchant, nil)
	f.repo.On("Update", mock.Anything, mock.MatchedBy(func(m *entities.Merchant) bool {
		return m.Package == "standard" && m.PendingPackage == "" && !m.PendingSince.Valid
	})).Return(nil)

	result, err := f.uc.SubmitStep4(context.Background(), merchant.ID, &entities.Step4Input{
		NextPackage: "standard",
		Next:        entities.NextSetup,
	})

	require.NoError(t, err)
	assert.Equal(t, entities.RedirectDashboard, result.Redirect)
	f.repo.AssertExpectations(t)
}

func TestSubmitStep4_StayOnStepKeepsSavedRule(t *testing.T) {
	f := newSetupFixture()
	merchant := newMerchant(4)
	merchant.Status = entities.MerchantStatusActive
	merchant.Package = "standard"
	merchant.CreatedAt = time.Now().Add(-72 * time.Hour)
	f.repo.On("GetByID", mock.Anything, merchant.ID).Return(merchant, nil)
	f.repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	result, err := f.uc.SubmitStep4(context.Background(), merchant.ID, &entities.Step4Input{
		NextPackage: "premium",
		Next:        "/setup/step4",
	})

	require.NoError(t, err)
	assert.Equal(t, "/setup/step4", result.Redirect)
	assert.True(t, result.Saved)
}

func TestStep1Form_DefaultsAwayMessage(t *testing.T) {
	f := newSetupFixture()
	merchant := newMerchant(0)
	f.repo.On("GetByID", mock.Anything, merchant.ID).Return(merchant, nil)

	form, blocked, err := f.uc.Step1Form(context.Background(), merchant.ID)

	require.NoError(t, err)
	require.Nil(t, blocked)
	assert.Equal(t, entities.DefaultAwayMessage, form.AwayMessage)
}

func TestStep3Form_FillsTierDefaults(t *testing.T) {
	f := newSetupFixture()
	merchant := newMerchant(2)
	merchant.Tiers = [][]entities.TierEntry{
		{{Label: "Custom", Text: "custom tier"}},
		nil,
		nil,
	}
	f.repo.On("GetByID", mock.Anything, merchant.ID).Return(merchant, nil)

	form, blocked, err := f.uc.Step3Form(context.Background(), merchant.ID)

	require.NoError(t, err)
	require.Nil(t, blocked)
	require.Len(t, form.Tiers, entities.TierCount)
	assert.Equal(t, "Custom", form.Tiers[0][0].Label)
	assert.Equal(t, entities.DefaultTiers()[1], form.Tiers[1])
	assert.Equal(t, entities.DefaultTiers()[2], form.Tiers[2])
}

func TestStep4Form_BlockedBeforeStep3(t *testing.T) {
	f := newSetupFixture()
	merchant := newMerchant(1)
	f.repo.On("GetByID", mock.Anything, merchant.ID).Return(merchant, nil)

	form, blocked, err := f.uc.Step4Form(context.Background(), merchant.ID)

	require.NoError(t, err)
	assert.Nil(t, form)
	require.NotNil(t, blocked)
	assert.Equal(t, "/setup/step1", blocked.Redirect)
}

func TestStep4Form_PendingPackageFallsBackToCurrent(t *testing.T) {
	f := newSetupFixture()
	merchant := newMerchant(4)
	merchant.Package = "standard"
	f.repo.On("GetByID", mock.Anything, merchant.ID).Return(merchant, nil)

	form, blocked, err := f.uc.Step4Form(context.Background(), merchant.ID)

	require.NoError(t, err)
	require.Nil(t, blocked)
	assert.Equal(t, "standard", form.Package)
	assert.Equal(t, "standard", form.NextPackage)
	assert.True(t, form.Agree)
}

func TestSetupStatus(t *testing.T) {
	f := newSetupFixture()
	merchant := newMerchant(4)
	merchant.Status = entities.MerchantStatusPending
	merchant.Package = "standard"
	f.repo.On("GetByID", mock.Anything, merchant.ID).Return(merchant, nil)

	status, err := f.uc.SetupStatus(context.Background(), merchant.ID)

	require.NoError(t, err)
	assert.Equal(t, merchant.ID, status.MerchantID)
	assert.Equal(t, entities.MerchantStatusPending, status.Status)
	assert.Equal(t, 4, status.Progress)
	assert.Contains(t, status.Message, "analysed")
}
