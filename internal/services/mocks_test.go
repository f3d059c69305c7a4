package services

import (
	"context"

	"kingsadvice/internal/models"
	serviceinterfaces "kingsadvice/internal/services/interfaces"

	"github.com/stretchr/testify/mock"
)

var (
	_ serviceinterfaces.RequestService = (*MockRequestService)(nil)
	_ serviceinterfaces.EmailService   = (*MockEmailService)(nil)
	_ serviceinterfaces.AIService      = (*MockAIService)(nil)
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

// MockEmailService is a testify mock of serviceinterfaces.EmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendBasicThankYou(ctx context.Context, req *models.Request, answer string) error {
	args := m.Called(ctx, req, answer)
	return args.Error(0)
}

func (m *MockEmailService) SendAIAnalystThankYou(ctx context.Context, req *models.Request, analysis string) error {
	args := m.Called(ctx, req, analysis)
	return args.Error(0)
}

func (m *MockEmailService) SendExpertRequestConfirmation(ctx context.Context, req *models.Request) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockEmailService) SendExpertResponseReady(ctx context.Context, req *models.Request, response string) error {
	args := m.Called(ctx, req, response)
	return args.Error(0)
}

func (m *MockEmailService) SendAdminNotification(ctx context.Context, req *models.Request) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockEmailService) IsEnabled() bool {
	args := m.Called()
	return args.Bool(0)
}

// MockAIService is a testify mock of serviceinterfaces.AIService
type MockAIService struct {
	mock.Mock
}

func (m *MockAIService) GenerateAnalysis(ctx context.Context, customerName, description string) string {
	args := m.Called(ctx, customerName, description)
	return args.String(0)
}

func (m *MockAIService) IsEnabled() bool {
	args := m.Called()
	return args.Bool(0)
}
