package jdenhancement

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"techscreen-backend/db/dbtest"
	generationlog "techscreen-backend/lib/generation-log"
	gptclient "techscreen-backend/lib/gpt/client"
	"techscreen-backend/models"
	interviewapimodels "techscreen-backend/models/api/interview"
	dbmodels "techscreen-backend/models/db"
)

func newTestHandler(t *testing.T, responses ...gptclient.MockResponse) (Provider, *gptclient.MockProvider, *gorm.DB) {
	t.Helper()
	conn := dbtest.New(t)
	mock := gptclient.NewMockProvider(responses...)
	provider := gptclient.WithRetry(mock, gptclient.RetryConfig{MaxAttempts: 3, BaseDelay: time.Millisecond})
	handler := NewHandler(conn, provider, generationlog.NewHandler(conn, nil, ""), Config{MaxTokens: 4000, Temperature: 0.3})
	return handler, mock, conn
}

func enhanceRequest() interviewapimodels.EnhanceJDRequest {
	return interviewapimodels.EnhanceJDRequest{
		ReqID:            "REQ-100",
		BasicTitle:       "Backend Engineer",
		BasicDescription: "Build services",
		BasicLevel:       "Senior",
		WorkOutput:       "Payments API",
	}
}

func TestEnhance(t *testing.T) {
	ctx := context.Background()

	t.Run(`creates and enhances job description`, func(t *testing.T) {
		handler, mock, conn := newTestHandler(t, gptclient.MockResponse{
			Text:  "\n  Enhanced text about payments.  \n",
			Usage: gptclient.NewUsage(100, 50),
		})
		resp, err := handler.Enhance(ctx, "user-1", enhanceRequest())
		require.NoError(t, err)
		require.Equal(t, "Backend Engineer", resp.EnhancedTitle)
		require.Equal(t, "Enhanced text about payments.", resp.EnhancedDescription)
		require.Equal(t, 150, resp.TokensUsed)
		require.NotEmpty(t, resp.LogID)
		require.Equal(t, interviewapimodels.BasicJDView{
			Title:       "Backend Engineer",
			Level:       "Senior",
			Description: "Build services",
		}, resp.BasicJD)
		require.Equal(t, "Payments API", resp.WorkInputs.WorkOutput)
		require.False(t, resp.CreatedAt.IsZero())

		require.Equal(t, 1, mock.CallCount())
		require.Equal(t, 0.3, mock.Calls[0].Temperature)
		require.Equal(t, 4000, mock.Calls[0].MaxTokens)
		require.Contains(t, mock.Calls[0].User, "Payments API")

		var jd dbmodels.JobDescription
		require.NoError(t, conn.First(&jd, "id = ?", resp.JobDescriptionID).Error)
		require.Equal(t, "Build services", jd.BasicDescription)
		require.Equal(t, "Enhanced text about payments.", jd.EnhancedDescription)
		require.NotNil(t, jd.EnhancedAt)
		require.Equal(t, "user-1", jd.CreatedByUserID)

		var logRec dbmodels.GenerationLog
		require.NoError(t, conn.First(&logRec, "id = ?", resp.LogID).Error)
		require.Equal(t, models.GenerationSuccess, logRec.Status)
		require.Equal(t, 150, logRec.TokensUsed)
		require.Equal(t, models.OperationJDEnhancement, logRec.OperationType)
	})

	t.Run(`repeated request reuses the job description`, func(t *testing.T) {
		handler, _, conn := newTestHandler(t,
			gptclient.MockResponse{Text: "first"},
			gptclient.MockResponse{Text: "second"},
		)
		first, err := handler.Enhance(ctx, "user-1", enhanceRequest())
		require.NoError(t, err)

		req := enhanceRequest()
		req.BasicTitle = "Platform Engineer"
		req.BasicDescription = "Different description"
		req.WorkRole = "Tech lead"
		second, err := handler.Enhance(ctx, "user-2", req)
		require.NoError(t, err)
		require.Equal(t, first.JobDescriptionID, second.JobDescriptionID)
		require.Equal(t, "Platform Engineer", second.EnhancedTitle)
		require.Equal(t, "Tech lead", second.WorkInputs.WorkRole)

		var count int64
		require.NoError(t, conn.Model(&dbmodels.JobDescription{}).Where("req_id = ?", "REQ-100").Count(&count).Error)
		require.EqualValues(t, 1, count)

		var jd dbmodels.JobDescription
		require.NoError(t, conn.First(&jd, "id = ?", first.JobDescriptionID).Error)
		require.Equal(t, "Backend Engineer", jd.BasicTitle)
		require.Equal(t, "Build services", jd.BasicDescription)
		require.Equal(t, "user-1", jd.CreatedByUserID)
		require.Equal(t, "Platform Engineer", jd.EnhancedTitle)
		require.Equal(t, "second", jd.EnhancedDescription)
		require.Equal(t, "Tech lead", jd.WorkRole)
		require.Equal(t, "Payments API", jd.WorkOutput)
	})

	t.Run(`provider exhaustion keeps the basic record`, func(t *testing.T) {
		rateLimit := gptclient.MockResponse{Err: &gptclient.ErrRateLimit{Err: errors.New("429")}}
		handler, mock, conn := newTestHandler(t, rateLimit, rateLimit, rateLimit)

		resp, err := handler.Enhance(ctx, "user-1", enhanceRequest())
		require.Nil(t, resp)
		var genErr *models.GenerationError
		require.True(t, errors.As(err, &genErr))
		require.Equal(t, models.ErrKindProviderExhausted, genErr.Kind)
		require.Equal(t, "REQ-100", genErr.ReqID)
		require.Equal(t, 3, mock.CallCount())

		var jd dbmodels.JobDescription
		require.NoError(t, conn.First(&jd, "req_id = ?", "REQ-100").Error)
		require.Empty(t, jd.EnhancedDescription)
		require.Nil(t, jd.EnhancedAt)

		var logRec dbmodels.GenerationLog
		require.NoError(t, conn.First(&logRec, "id = ?", genErr.LogID).Error)
		require.Equal(t, models.GenerationFailed, logRec.Status)
		require.Equal(t, models.ErrKindProviderExhausted, logRec.ErrorKind)
		require.NotEmpty(t, logRec.ErrorMessage)
		require.NotNil(t, logRec.CompletedAt)
	})

	t.Run(`fatal provider error`, func(t *testing.T) {
		handler, mock, _ := newTestHandler(t, gptclient.MockResponse{Err: gptclient.NewProviderError(401, errors.New("invalid key"))})
		_, err := handler.Enhance(ctx, "user-1", enhanceRequest())
		var genErr *models.GenerationError
		require.True(t, errors.As(err, &genErr))
		require.Equal(t, models.ErrKindProviderFatal, genErr.Kind)
		require.Equal(t, 1, mock.CallCount())
	})
}

func TestGetByReqID(t *testing.T) {
	handler, _, _ := newTestHandler(t, gptclient.MockResponse{Text: "enhanced"})

	_, err := handler.GetByReqID("missing")
	require.ErrorIs(t, err, models.ErrNotFound)

	_, err = handler.Enhance(context.Background(), "user-1", enhanceRequest())
	require.NoError(t, err)
	view, err := handler.GetByReqID("REQ-100")
	require.NoError(t, err)
	require.Equal(t, "enhanced", view.EnhancedDescription)
	require.Equal(t, "Backend Engineer", view.BasicTitle)
}
