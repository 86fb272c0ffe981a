package services

// EntitlementService gates premium content. The gate reads only the premium
// flag; premium_until is enforced out-of-band by the subscription scheduler,
// which clears the flag once the period ends.
type EntitlementService struct {
	profiles *ProfileService
}

func NewEntitlementService(profiles *ProfileService) *EntitlementService {
	return &EntitlementService{profiles: profiles}
}

// IsEntitled reports whether the user currently holds premium access.
func (e *EntitlementService) IsEntitled(userID string) (bool, error) {
	prof, err := e.profiles.GetOrCreate(userID)
	if err != nil {
		return false, err
	}
	return prof.IsPremium, nil
}
