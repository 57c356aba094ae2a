package service

import (
	"strings"

	"github.com/kdas/shopkart-backend/internal/app/repository"
	"github.com/kdas/shopkart-backend/pkg/logger"
)

// VerificationService decides whether a reviewer has purchased a product,
// by fuzzy-matching the reviewer name against the customer names on past
// orders for that product.
type VerificationService struct {
	orderRepo *repository.OrderRepository
}

func NewVerificationService(orderRepo *repository.OrderRepository) *VerificationService {
	return &VerificationService{orderRepo: orderRepo}
}

// IsVerifiedPurchase reports whether any order containing the product has a
// customer full name ("first last") that contains the reviewer name, both
// sides trimmed and lower-cased. The match is deliberately loose and
// one-directional so a partial-name review ("Krishna") matches an order
// placed by "Krishna Das".
//
// An empty or all-whitespace reviewer name is a substring of every customer
// name, so it verifies against any matching order. That permissiveness is
// part of the contract; do not tighten it here.
func (s *VerificationService) IsVerifiedPurchase(productLegacyID int, reviewerName string) (bool, error) {
	orders, err := s.orderRepo.FindByProductLegacyID(productLegacyID)
	if err != nil {
		logger.Error("Failed to fetch orders for purchase verification", err, map[string]interface{}{
			"legacy_id": productLegacyID,
		})
		return false, err
	}
	if len(orders) == 0 {
		return false, nil
	}

	reviewer := strings.ToLower(strings.TrimSpace(reviewerName))
	for _, order := range orders {
		customer := strings.ToLower(strings.TrimSpace(order.CustomerFullName()))
		if strings.Contains(customer, reviewer) {
			return true, nil
		}
	}
	return false, nil
}
