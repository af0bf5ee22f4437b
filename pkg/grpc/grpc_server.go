package grpc

import (
	"liyu1981.xyz/minute-policy-service/pkg/family"
)

type PolicyServer struct {
	Family           *family.Family
	RateLimiterStore *family.RateLimiterStore
}

func (s *PolicyServer) CheckChildLimiter(childID string) bool {
	return s.RateLimiterStore.Allow(childID)
}
