package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"dealer-backend/internal/errs"
	"dealer-backend/internal/models"
	"dealer-backend/internal/repository"
	"dealer-backend/pkg/logger"
)

func setupInquiryService(t *testing.T) *InquiryService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Inquiry{}))
	return NewInquiryService(repository.NewInquiryRepository(db), logger.NewNop())
}

func TestCreateInquiry(t *testing.T) {
	svc := setupInquiryService(t)
	ctx := context.Background()

	t.Run("PersistsWithDefaults", func(t *testing.T) {
		created, err := svc.CreateInquiry(ctx, &CreateInquiryRequest{
			CustomerName:  "  Jordan Mwangi ",
			CustomerEmail: "jordan@example.com",
			Message:       "Is the M4 still available?",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, "Jordan Mwangi", created.CustomerName)
		assert.Equal(t, "new", created.Status)
		require.NotNil(t, created.Message)
		assert.Nil(t, created.CustomerPhone)
	})

	t.Run("RequiresName", func(t *testing.T) {
		_, err := svc.CreateInquiry(ctx, &CreateInquiryRequest{
			CustomerEmail: "jordan@example.com",
		})
		assert.True(t, errs.IsValidation(err))
	})

	t.Run("RequiresEmail", func(t *testing.T) {
		_, err := svc.CreateInquiry(ctx, &CreateInquiryRequest{
			CustomerName: "Jordan",
		})
		assert.True(t, errs.IsValidation(err))
	})
}

func TestGetAllInquiriesNewestFirst(t *testing.T) {
	svc := setupInquiryService(t)
	ctx := context.Background()

	for _, name := range []string{"First", "Second"} {
		_, err := svc.CreateInquiry(ctx, &CreateInquiryRequest{
			CustomerName:  name,
			CustomerEmail: name + "@example.com",
		})
		require.NoError(t, err)
	}

	inquiries, err := svc.GetAllInquiries(ctx)
	require.NoError(t, err)
	assert.Len(t, inquiries, 2)
}
