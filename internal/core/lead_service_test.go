package core

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storefront-backend-go/internal/models"
)

// fakeLeadRepo drives the identifier ladder from tests.
type fakeLeadRepo struct {
	nextSeq     int64
	seqErr      error
	existing    map[string]bool
	created     []*models.Lead
	existsCalls int
}

func newFakeLeadRepo() *fakeLeadRepo {
	return &fakeLeadRepo{nextSeq: 1, existing: make(map[string]bool)}
}

func (f *fakeLeadRepo) Create(_ context.Context, lead *models.Lead) (string, error) {
	lead.ID = "doc1"
	f.created = append(f.created, lead)
	return lead.ID, nil
}

func (f *fakeLeadRepo) NextSequence(_ context.Context, _ string) (int64, error) {
	if f.seqErr != nil {
		return 0, f.seqErr
	}
	return f.nextSeq, nil
}

func (f *fakeLeadRepo) ExistsByLeadID(_ context.Context, leadID string) (bool, error) {
	f.existsCalls++
	return f.existing[leadID], nil
}

func newTestLeadService(repo *fakeLeadRepo, now time.Time) LeadService {
	svc := NewLeadService(repo, nil, "", "", nil, zap.NewNop()).(*leadService)
	svc.now = func() time.Time { return now }
	return svc
}

func TestFinancialYearKey(t *testing.T) {
	assert.Equal(t, "25-26", FinancialYearKey(time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "26-27", FinancialYearKey(time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "25-26", FinancialYearKey(time.Date(2025, time.December, 15, 0, 0, 0, 0, time.UTC)))
}

func TestCreateLeadAssignsSequentialID(t *testing.T) {
	repo := newFakeLeadRepo()
	repo.nextSeq = 42
	svc := newTestLeadService(repo, time.Date(2025, time.August, 29, 0, 0, 0, 0, time.UTC))

	lead, err := svc.CreateLead(context.Background(), models.CreateLeadRequest{Name: "Asha", Phone: "+911234567890"})
	require.NoError(t, err)
	assert.Equal(t, "P-LEAD M/25-26/0042", lead.LeadID)

	pattern := regexp.MustCompile(`^LEAD M/\d{2}-\d{2}/\d{4}$`)
	assert.True(t, pattern.MatchString(strings.TrimPrefix(lead.LeadID, "P-")))
}

func TestCreateLeadAppendsDupSuffixOnCollision(t *testing.T) {
	repo := newFakeLeadRepo()
	repo.nextSeq = 7
	repo.existing["P-LEAD M/25-26/0007"] = true
	svc := newTestLeadService(repo, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC))

	lead, err := svc.CreateLead(context.Background(), models.CreateLeadRequest{Name: "Asha", Phone: "+911234567890"})
	require.NoError(t, err)
	assert.Equal(t, "P-LEAD M/25-26/0007-dup", lead.LeadID)
}

func TestCreateLeadNumbersLaterDupSuffixes(t *testing.T) {
	repo := newFakeLeadRepo()
	repo.nextSeq = 7
	repo.existing["P-LEAD M/25-26/0007"] = true
	repo.existing["P-LEAD M/25-26/0007-dup"] = true
	svc := newTestLeadService(repo, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC))

	lead, err := svc.CreateLead(context.Background(), models.CreateLeadRequest{Name: "Asha", Phone: "+911234567890"})
	require.NoError(t, err)
	assert.Equal(t, "P-LEAD M/25-26/0007-dup2", lead.LeadID)
}

func TestCreateLeadFallsBackToTimestampOnCounterFailure(t *testing.T) {
	repo := newFakeLeadRepo()
	repo.seqErr = errors.New("transaction aborted")
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestLeadService(repo, now)

	lead, err := svc.CreateLead(context.Background(), models.CreateLeadRequest{Name: "Asha", Phone: "+911234567890"})
	require.NoError(t, err, "a counter outage must not lose the enquiry")
	assert.Equal(t, "P-LEAD M/25-26/T1748779200", lead.LeadID)
	assert.Equal(t, 0, repo.existsCalls, "timestamp identifiers skip the uniqueness check")
}

func TestCreateLeadPersistsRequestFields(t *testing.T) {
	repo := newFakeLeadRepo()
	svc := newTestLeadService(repo, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC))

	_, err := svc.CreateLead(context.Background(), models.CreateLeadRequest{
		Name:        "Asha",
		Phone:       "+911234567890",
		Email:       "asha@example.com",
		ProductID:   "p1",
		ProductName: "Wardrobe",
		Message:     "Need a quote",
		Source:      "product-page",
	})
	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	saved := repo.created[0]
	assert.Equal(t, "Asha", saved.Name)
	assert.Equal(t, "p1", saved.ProductID)
	assert.Equal(t, "product-page", saved.Source)
}
