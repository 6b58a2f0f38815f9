package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// nextInvoiceNo allocates the next INV-YY-MM-NNNN number. YY/MM reflect
// generation time, not the billing period. The counter lives in a
// per-generation-month sequence row incremented atomically inside the
// caller's transaction, so concurrent creations cannot mint the same number.
func (s *Service) nextInvoiceNo(ctx context.Context, tx *gorm.DB, now time.Time) (string, error) {
	key := fmt.Sprintf("invoice:%04d-%02d", now.Year(), int(now.Month()))
	seq, err := s.repo.NextInvoiceSeq(ctx, tx, key)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("INV-%02d-%02d-%04d", now.Year()%100, int(now.Month()), seq), nil
}
