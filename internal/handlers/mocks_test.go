package handlers

import (
	"context"

	"kingsadvice/internal/models"
	serviceinterfaces "kingsadvice/internal/services/interfaces"

	"github.com/stretchr/testify/mock"
)

var (
	_ serviceinterfaces.RequestService   = (*MockRequestService)(nil)
	_ serviceinterfaces.LifecycleService = (*MockLifecycleService)(nil)
	_ serviceinterfaces.PaymentService   = (*MockPaymentService)(nil)
	_ serviceinterfaces.AdminService     = (*MockAdminService)(nil)
)

// MockRequestService is a testify mock of serviceinterfaces.RequestService
type MockRequestService struct {
	mock.Mock
}

func (m *MockRequestService) CreateRequest(ctx context.Context, input *models.CreateRequestInput) (*models.Request, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Request), args.Error(1)
}

func (m *MockRequestService) GetRequestByID(ctx context.Context, id string) (*models.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Request), args.Error(1)
}

func (m *MockRequestService) GetAllRequests(ctx context.Context) ([]models.Request, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Request), args.Error(1)
}

func (m *MockRequestService) UpdateRequest(ctx context.Context, id string, input *models.UpdateRequestInput) (*models.Request, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Request), args.Error(1)
}

func (m *MockRequestService) DeleteRequest(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRequestService) TransitionIfPending(ctx context.Context, id string, status models.Status, response string) (*models.Request, error) {
	args := m.Called(ctx, id, status, response)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Request), args.Error(1)
}

func (m *MockRequestService) GetAllBasicQuestions(ctx context.Context) ([]models.BasicQuestion, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BasicQuestion), args.Error(1)
}

func (m *MockRequestService) GetBasicQuestionByTopic(ctx context.Context, topic string) (*models.BasicQuestion, error) {
	args := m.Called(ctx, topic)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BasicQuestion), args.Error(1)
}

func (m *MockRequestService) CreateBasicQuestion(ctx context.Context, input *models.BasicQuestionInput) (*models.BasicQuestion, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BasicQuestion), args.Error(1)
}

func (m *MockRequestService) UpdateBasicQuestion(ctx context.Context, id string, input *models.UpdateBasicQuestionInput) (*models.BasicQuestion, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BasicQuestion), args.Error(1)
}

func (m *MockRequestService) DeleteBasicQuestion(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockLifecycleService is a testify mock of serviceinterfaces.LifecycleService
type MockLifecycleService struct {
	mock.Mock
}

func (m *MockLifecycleService) ResolvePayment(ctx context.Context, requestID string) (*models.Request, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Request), args.Error(1)
}

func (m *MockLifecycleService) HandleAdminUpdate(ctx context.Context, id string, input *models.UpdateRequestInput) (*models.Request, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Request), args.Error(1)
}

func (m *MockLifecycleService) ResolveBasicDirect(ctx context.Context, requestID string) (*models.Request, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Request), args.Error(1)
}

// MockPaymentService is a testify mock of serviceinterfaces.PaymentService
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) CreateCheckoutSession(ctx context.Context, req *models.Request, returnBase string) (*models.CheckoutSession, error) {
	args := m.Called(ctx, req, returnBase)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CheckoutSession), args.Error(1)
}

func (m *MockPaymentService) GetSessionStatus(ctx context.Context, sessionID string) *models.CheckoutStatus {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(*models.CheckoutStatus)
}

func (m *MockPaymentService) PublishableKey() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockPaymentService) IsEnabled() bool {
	args := m.Called()
	return args.Bool(0)
}

// MockAdminService is a testify mock of serviceinterfaces.AdminService
type MockAdminService struct {
	mock.Mock
}

func (m *MockAdminService) Authenticate(ctx context.Context, username, password string) (*models.Admin, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Admin), args.Error(1)
}

func (m *MockAdminService) GetAdminByUsername(ctx context.Context, username string) (*models.Admin, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Admin), args.Error(1)
}

func (m *MockAdminService) CreateAdmin(ctx context.Context, username, password string) (*models.Admin, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Admin), args.Error(1)
}

func (m *MockAdminService) SetPassword(ctx context.Context, username, password string) error {
	args := m.Called(ctx, username, password)
	return args.Error(0)
}

func (m *MockAdminService) EnsureAdminExists(ctx context.Context, username, password string) error {
	args := m.Called(ctx, username, password)
	return args.Error(0)
}
