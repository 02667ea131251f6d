package db

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"storefront-backend-go/internal/models"
)

const (
	leadsCollection        = "leads"
	leadCountersCollection = "leadCounters"

	// leadIDPrefix precedes the financial-year segment in every lead ID.
	leadIDPrefix = "P-LEAD M/"
)

// firestoreLeadRepository implements LeadRepository using Firestore.
type firestoreLeadRepository struct {
	client *firestore.Client
}

// NewFirestoreLeadRepository creates a new instance of firestoreLeadRepository.
func NewFirestoreLeadRepository(client *firestore.Client) LeadRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for LeadRepository.")
	}
	return &firestoreLeadRepository{client: client}
}

// Create adds a new lead document with an auto-generated ID.
func (r *firestoreLeadRepository) Create(ctx context.Context, lead *models.Lead) (string, error) {
	docRef := r.client.Collection(leadsCollection).NewDoc()
	lead.ID = docRef.ID

	_, err := docRef.Create(ctx, lead)
	if err != nil {
		return "", fmt.Errorf("failed to create lead: %w", err)
	}
	return docRef.ID, nil
}

// NextSequence transactionally increments the counter for fyKey. When the
// counter document does not exist yet, the transaction seeds it from the
// highest sequence already present in the leads collection for that
// financial year, so the counter can be introduced on a live dataset.
func (r *firestoreLeadRepository) NextSequence(ctx context.Context, fyKey string) (int64, error) {
	if fyKey == "" {
		return 0, errors.New("fyKey cannot be empty for NextSequence operation")
	}
	ref := r.client.Collection(leadCountersCollection).Doc(fyKey)

	var next int64
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		switch {
		case err == nil:
			var counter models.LeadCounter
			if err := snap.DataTo(&counter); err != nil {
				return fmt.Errorf("failed to decode lead counter '%s': %w", fyKey, err)
			}
			next = counter.Seq + 1
		case status.Code(err) == codes.NotFound:
			maxSeq, scanErr := r.maxSequenceForYear(ctx, tx, fyKey)
			if scanErr != nil {
				return scanErr
			}
			next = maxSeq + 1
		default:
			return fmt.Errorf("failed to read lead counter '%s': %w", fyKey, err)
		}
		return tx.Set(ref, models.LeadCounter{FY: fyKey, Seq: next})
	})
	if err != nil {
		return 0, fmt.Errorf("lead counter transaction failed for '%s': %w", fyKey, err)
	}
	return next, nil
}

// maxSequenceForYear scans leads whose ID carries fyKey and returns the
// highest sequence number found. Uniqueness suffixes (-dup, -dup2) after
// the sequence are ignored.
func (r *firestoreLeadRepository) maxSequenceForYear(ctx context.Context, tx *firestore.Transaction, fyKey string) (int64, error) {
	prefix := leadIDPrefix + fyKey + "/"
	query := r.client.Collection(leadsCollection).
		Where("leadId", ">=", prefix).
		Where("leadId", "<", prefix+"\uf8ff")

	iter := tx.Documents(query)
	defer iter.Stop()

	var maxSeq int64
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("failed to scan leads for '%s': %w", fyKey, err)
		}
		leadID, _ := doc.DataAt("leadId")
		id, ok := leadID.(string)
		if !ok {
			continue
		}
		seqPart := strings.TrimPrefix(id, prefix)
		if i := strings.IndexByte(seqPart, '-'); i >= 0 {
			seqPart = seqPart[:i]
		}
		seq, err := strconv.ParseInt(seqPart, 10, 64)
		if err != nil {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}
	return maxSeq, nil
}

// ExistsByLeadID reports whether a lead already carries leadID.
func (r *firestoreLeadRepository) ExistsByLeadID(ctx context.Context, leadID string) (bool, error) {
	if leadID == "" {
		return false, errors.New("leadID cannot be empty for ExistsByLeadID operation")
	}
	iter := r.client.Collection(leadsCollection).
		Where("leadId", "==", leadID).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	_, err := iter.Next()
	if err == iterator.Done {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check lead ID '%s': %w", leadID, err)
	}
	return true, nil
}
