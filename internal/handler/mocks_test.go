package handler_test

import (
	"context"
	"time"

	"lingo-quiz/internal/domain"
	"lingo-quiz/internal/dto"
)

// --- Manual Mocks ---

type MockQuizResultService struct {
	SubmitResultFunc func(ctx context.Context, userID string, req *dto.SubmitQuizResultRequest) (*dto.SubmitQuizResultResponse, error)
	GetHistoryFunc   func(ctx context.Context, userID string, page dto.PageRequest) (*dto.QuizHistoryResponse, error)
	GetResultFunc    func(ctx context.Context, userID, resultID string) (*dto.QuizResultDetail, error)
}

func (m *MockQuizResultService) SubmitResult(ctx context.Context, userID string, req *dto.SubmitQuizResultRequest) (*dto.SubmitQuizResultResponse, error) {
	if m.SubmitResultFunc != nil {
		return m.SubmitResultFunc(ctx, userID, req)
	}
	panic("MockQuizResultService.SubmitResultFunc not implemented")
}

func (m *MockQuizResultService) GetHistory(ctx context.Context, userID string, page dto.PageRequest) (*dto.QuizHistoryResponse, error) {
	if m.GetHistoryFunc != nil {
		return m.GetHistoryFunc(ctx, userID, page)
	}
	panic("MockQuizResultService.GetHistoryFunc not implemented")
}

func (m *MockQuizResultService) GetResult(ctx context.Context, userID, resultID string) (*dto.QuizResultDetail, error) {
	if m.GetResultFunc != nil {
		return m.GetResultFunc(ctx, userID, resultID)
	}
	panic("MockQuizResultService.GetResultFunc not implemented")
}

type MockQuizStatsService struct {
	GetStatsFunc     func(ctx context.Context, userID string) (*dto.QuizStatsResponse, error)
	GetAnalyticsFunc func(ctx context.Context, userID, category string) (*dto.QuizAnalyticsResponse, error)
}

func (m *MockQuizStatsService) GetStats(ctx context.Context, userID string) (*dto.QuizStatsResponse, error) {
	if m.GetStatsFunc != nil {
		return m.GetStatsFunc(ctx, userID)
	}
	panic("MockQuizStatsService.GetStatsFunc not implemented")
}

func (m *MockQuizStatsService) GetAnalytics(ctx context.Context, userID, category string) (*dto.QuizAnalyticsResponse, error) {
	if m.GetAnalyticsFunc != nil {
		return m.GetAnalyticsFunc(ctx, userID, category)
	}
	panic("MockQuizStatsService.GetAnalyticsFunc not implemented")
}

type MockAuthService struct {
	RegisterFunc       func(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	LoginFunc          func(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	MeFunc             func(ctx context.Context, userID string) (*dto.MeResponse, error)
	ForgotPasswordFunc func(ctx context.Context, req *dto.ForgotPasswordRequest) (*dto.ForgotPasswordResponse, error)
	ResetPasswordFunc  func(ctx context.Context, req *dto.ResetPasswordRequest) (*dto.MessageResponse, error)
	ResetAuthFunc      func(ctx context.Context) (*dto.ResetAuthResponse, error)
}

func (m *MockAuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, req)
	}
	panic("MockAuthService.RegisterFunc not implemented")
}

func (m *MockAuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, req)
	}
	panic("MockAuthService.LoginFunc not implemented")
}

func (m *MockAuthService) Me(ctx context.Context, userID string) (*dto.MeResponse, error) {
	if m.MeFunc != nil {
		return m.MeFunc(ctx, userID)
	}
	panic("MockAuthService.MeFunc not implemented")
}

func (m *MockAuthService) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	panic("not implemented in mock")
}

func (m *MockAuthService) CreateJWT(ctx context.Context, user *domain.User, ttl time.Duration, tokenType string) (string, error) {
	panic("not implemented in mock")
}

func (m *MockAuthService) ForgotPassword(ctx context.Context, req *dto.ForgotPasswordRequest) (*dto.ForgotPasswordResponse, error) {
	if m.ForgotPasswordFunc != nil {
		return m.ForgotPasswordFunc(ctx, req)
	}
	panic("MockAuthService.ForgotPasswordFunc not implemented")
}

func (m *MockAuthService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) (*dto.MessageResponse, error) {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, req)
	}
	panic("MockAuthService.ResetPasswordFunc not implemented")
}

func (m *MockAuthService) ResetAuth(ctx context.Context) (*dto.ResetAuthResponse, error) {
	if m.ResetAuthFunc != nil {
		return m.ResetAuthFunc(ctx)
	}
	panic("MockAuthService.ResetAuthFunc not implemented")
}

func (m *MockAuthService) ClearResetTokens(ctx context.Context) (int64, error) {
	panic("not implemented in mock")
}

type MockDictionaryService struct {
	LookupFunc func(ctx context.Context, word string) (*dto.DictionaryResponse, error)
}

func (m *MockDictionaryService) Lookup(ctx context.Context, word string) (*dto.DictionaryResponse, error) {
	if m.LookupFunc != nil {
		return m.LookupFunc(ctx, word)
	}
	panic("MockDictionaryService.LookupFunc not implemented")
}

type MockVocabularyService struct {
	ListFunc   func(ctx context.Context, userID string) ([]dto.VocabularyResponse, error)
	UpsertFunc func(ctx context.Context, userID string, req *dto.VocabularyRequest) (*dto.VocabularyResponse, error)
	UpdateFunc func(ctx context.Context, userID, id string, req *dto.VocabularyUpdateRequest) (*dto.VocabularyResponse, error)
	DeleteFunc func(ctx context.Context, userID, id string) error
}

func (m *MockVocabularyService) List(ctx context.Context, userID string) ([]dto.VocabularyResponse, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID)
	}
	panic("MockVocabularyService.ListFunc not implemented")
}

func (m *MockVocabularyService) Upsert(ctx context.Context, userID string, req *dto.VocabularyRequest) (*dto.VocabularyResponse, error) {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, userID, req)
	}
	panic("MockVocabularyService.UpsertFunc not implemented")
}

func (m *MockVocabularyService) Update(ctx context.Context, userID, id string, req *dto.VocabularyUpdateRequest) (*dto.VocabularyResponse, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, userID, id, req)
	}
	panic("MockVocabularyService.UpdateFunc not implemented")
}

func (m *MockVocabularyService) Delete(ctx context.Context, userID, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, id)
	}
	panic("MockVocabularyService.DeleteFunc not implemented")
}

type MockMediaService struct {
	ListContentFunc  func(ctx context.Context, req dto.MediaListRequest) (*dto.MediaListResponse, error)
	GetContentFunc   func(ctx context.Context, id string) (*dto.MediaContentResponse, error)
	CategoriesFunc   func(ctx context.Context) (*dto.MediaCategoriesResponse, error)
	AdminListFunc    func(ctx context.Context, page dto.PageRequest) (*dto.AdminMediaListResponse, error)
	AdminGetFunc     func(ctx context.Context, id string) (*dto.AdminMediaResponse, error)
	UploadFunc       func(ctx context.Context, uploaderID string, form *dto.MediaUploadForm, mediaFile, thumbnail *dto.UploadedFile) (*dto.MediaUploadResponse, error)
	UpdateFunc       func(ctx context.Context, id string, req *dto.MediaUpdateRequest) (*dto.AdminMediaMessageResponse, error)
	DeleteFunc       func(ctx context.Context, id string) (*dto.MessageResponse, error)
	ToggleFunc       func(ctx context.Context, id string) (*dto.AdminMediaMessageResponse, error)
	ReplaceFilesFunc func(ctx context.Context, id string, mediaFile, thumbnail *dto.UploadedFile) (*dto.AdminMediaMessageResponse, error)
}

func (m *MockMediaService) ListContent(ctx context.Context, req dto.MediaListRequest) (*dto.MediaListResponse, error) {
	if m.ListContentFunc != nil {
		return m.ListContentFunc(ctx, req)
	}
	panic("MockMediaService.ListContentFunc not implemented")
}

func (m *MockMediaService) GetContent(ctx context.Context, id string) (*dto.MediaContentResponse, error) {
	if m.GetContentFunc != nil {
		return m.GetContentFunc(ctx, id)
	}
	panic("MockMediaService.GetContentFunc not implemented")
}

func (m *MockMediaService) Categories(ctx context.Context) (*dto.MediaCategoriesResponse, error) {
	if m.CategoriesFunc != nil {
		return m.CategoriesFunc(ctx)
	}
	panic("MockMediaService.CategoriesFunc not implemented")
}

func (m *MockMediaService) AdminList(ctx context.Context, page dto.PageRequest) (*dto.AdminMediaListResponse, error) {
	if m.AdminListFunc != nil {
		return m.AdminListFunc(ctx, page)
	}
	panic("MockMediaService.AdminListFunc not implemented")
}

func (m *MockMediaService) AdminGet(ctx context.Context, id string) (*dto.AdminMediaResponse, error) {
	if m.AdminGetFunc != nil {
		return m.AdminGetFunc(ctx, id)
	}
	panic("MockMediaService.AdminGetFunc not implemented")
}

func (m *MockMediaService) Upload(ctx context.Context, uploaderID string, form *dto.MediaUploadForm, mediaFile, thumbnail *dto.UploadedFile) (*dto.MediaUploadResponse, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, uploaderID, form, mediaFile, thumbnail)
	}
	panic("MockMediaService.UploadFunc not implemented")
}

func (m *MockMediaService) Update(ctx context.Context, id string, req *dto.MediaUpdateRequest) (*dto.AdminMediaMessageResponse, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, req)
	}
	panic("MockMediaService.UpdateFunc not implemented")
}

func (m *MockMediaService) Delete(ctx context.Context, id string) (*dto.MessageResponse, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	panic("MockMediaService.DeleteFunc not implemented")
}

func (m *MockMediaService) Toggle(ctx context.Context, id string) (*dto.AdminMediaMessageResponse, error) {
	if m.ToggleFunc != nil {
		return m.ToggleFunc(ctx, id)
	}
	panic("MockMediaService.ToggleFunc not implemented")
}

func (m *MockMediaService) ReplaceFiles(ctx context.Context, id string, mediaFile, thumbnail *dto.UploadedFile) (*dto.AdminMediaMessageResponse, error) {
	if m.ReplaceFilesFunc != nil {
		return m.ReplaceFilesFunc(ctx, id, mediaFile, thumbnail)
	}
	panic("MockMediaService.ReplaceFilesFunc not implemented")
}
