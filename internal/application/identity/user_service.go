package identity

import (
	"context"
	"errors"

	"github.com/bolibana/backend/internal/domain/identity"
	"github.com/bolibana/backend/internal/domain/shared"
	"github.com/bolibana/backend/internal/domain/site"
	"github.com/google/uuid"
)

// UserService handles user management within a site
type UserService struct {
	userRepo       identity.Repository
	siteRepo       site.Repository
	eventPublisher shared.EventPublisher
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.Repository, siteRepo site.Repository) *UserService {
	return &UserService{userRepo: userRepo, siteRepo: siteRepo}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *UserService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new user attached to a site
func (s *UserService) Create(ctx context.Context, siteID uuid.UUID, req CreateUserRequest) (*UserResponse, error) {
	if _, err := s.siteRepo.FindByID(ctx, siteID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_SITE", "Site not found")
		}
		return nil, err
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Username is already taken")
	}

	user, err := identity.NewUser(siteID, req.Username, req.Password)
	if err != nil {
		return nil, err
	}
	if err := s.applyProfile(user, req); err != nil {
		return nil, err
	}
	if req.IsSiteAdmin {
		user.GrantSiteAdmin()
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, user)

	return toUserResponse(user), nil
}

// CreateSuperuser creates a platform superuser without site affiliation
func (s *UserService) CreateSuperuser(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	exists, err := s.userRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Username is already taken")
	}

	user, err := identity.NewSuperuser(req.Username, req.Password)
	if err != nil {
		return nil, err
	}
	if err := s.applyProfile(user, req); err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, user)

	return toUserResponse(user), nil
}

// GetByID retrieves a user, enforcing site scoping
func (s *UserService) GetByID(ctx context.Context, siteID, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.findForSite(ctx, siteID, userID)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// List lists the users of a site
func (s *UserService) List(ctx context.Context, siteID uuid.UUID, filter UserListFilter) (shared.Paginated[UserResponse], error) {
	result, err := s.userRepo.FindAllForSite(ctx, siteID, shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Search:   filter.Search,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
	})
	if err != nil {
		return shared.Paginated[UserResponse]{}, err
	}

	items := make([]UserResponse, len(result.Items))
	for i, u := range result.Items {
		items[i] = *toUserResponse(u)
	}
	return shared.Paginated[UserResponse]{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	}, nil
}

// Update updates a user's profile fields
func (s *UserService) Update(ctx context.Context, siteID, userID uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.findForSite(ctx, siteID, userID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		if err := user.SetEmail(*req.Email); err != nil {
			return nil, err
		}
	}
	if req.Phone != nil {
		if err := user.SetPhone(*req.Phone); err != nil {
			return nil, err
		}
	}
	if req.FirstName != nil || req.LastName != nil {
		firstName := user.FirstName
		lastName := user.LastName
		if req.FirstName != nil {
			firstName = *req.FirstName
		}
		if req.LastName != nil {
			lastName = *req.LastName
		}
		user.SetName(firstName, lastName)
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// GrantSiteAdmin promotes a user to site administrator
func (s *UserService) GrantSiteAdmin(ctx context.Context, siteID, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.findForSite(ctx, siteID, userID)
	if err != nil {
		return nil, err
	}

	user.GrantSiteAdmin()
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// RevokeSiteAdmin demotes a site administrator. The last active admin
// of a site cannot be demoted.
func (s *UserService) RevokeSiteAdmin(ctx context.Context, siteID, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.findForSite(ctx, siteID, userID)
	if err != nil {
		return nil, err
	}

	if user.IsSiteAdmin && user.IsActive {
		admins, err := s.userRepo.CountSiteAdmins(ctx, siteID)
		if err != nil {
			return nil, err
		}
		if admins <= 1 {
			return nil, shared.NewDomainError("LAST_SITE_ADMIN", "Cannot demote the last administrator of a site")
		}
	}

	user.RevokeSiteAdmin()
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Activate re-enables a deactivated user
func (s *UserService) Activate(ctx context.Context, siteID, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.findForSite(ctx, siteID, userID)
	if err != nil {
		return nil, err
	}

	if err := user.Activate(); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Deactivate disables a user. The last active site admin cannot be
// deactivated.
func (s *UserService) Deactivate(ctx context.Context, siteID, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.findForSite(ctx, siteID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.guardLastAdmin(ctx, siteID, user); err != nil {
		return nil, err
	}

	if err := user.Deactivate(); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, user)
	return toUserResponse(user), nil
}

// ResetPassword sets a new password without checking the old one.
// Reserved for site administrators.
func (s *UserService) ResetPassword(ctx context.Context, siteID, userID uuid.UUID, newPassword string) error {
	user, err := s.findForSite(ctx, siteID, userID)
	if err != nil {
		return err
	}

	if err := user.ResetPassword(newPassword); err != nil {
		return err
	}
	return s.userRepo.Save(ctx, user)
}

// Delete removes a user. Users referenced by sales or stock movements
// are deactivated instead so the history keeps its author, and the
// caller receives ErrProtectedDelete to signal the downgrade.
func (s *UserService) Delete(ctx context.Context, siteID, userID uuid.UUID) error {
	user, err := s.findForSite(ctx, siteID, userID)
	if err != nil {
		return err
	}

	if err := s.guardLastAdmin(ctx, siteID, user); err != nil {
		return err
	}

	protected, err := s.userRepo.HasDependentRecords(ctx, userID)
	if err != nil {
		return err
	}
	if protected {
		if user.IsActive {
			if err := user.Deactivate(); err != nil {
				return err
			}
			if err := s.userRepo.Save(ctx, user); err != nil {
				return err
			}
			s.publishDomainEvents(ctx, user)
		}
		return shared.ErrProtectedDelete
	}

	return s.userRepo.Delete(ctx, userID)
}

func (s *UserService) findForSite(ctx context.Context, siteID, userID uuid.UUID) (*identity.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.SiteID == nil || *user.SiteID != siteID {
		return nil, shared.ErrNotFound
	}
	return user, nil
}

func (s *UserService) applyProfile(user *identity.User, req CreateUserRequest) error {
	if req.Email != "" {
		if err := user.SetEmail(req.Email); err != nil {
			return err
		}
	}
	if req.Phone != "" {
		if err := user.SetPhone(req.Phone); err != nil {
			return err
		}
	}
	if req.FirstName != "" || req.LastName != "" {
		user.SetName(req.FirstName, req.LastName)
	}
	return nil
}

func (s *UserService) guardLastAdmin(ctx context.Context, siteID uuid.UUID, user *identity.User) error {
	if !user.IsSiteAdmin || !user.IsActive {
		return nil
	}
	admins, err := s.userRepo.CountSiteAdmins(ctx, siteID)
	if err != nil {
		return err
	}
	if admins <= 1 {
		return shared.NewDomainError("LAST_SITE_ADMIN", "Cannot remove the last administrator of a site")
	}
	return nil
}

func (s *UserService) publishDomainEvents(ctx context.Context, user *identity.User) {
	if s.eventPublisher == nil {
		user.ClearDomainEvents()
		return
	}
	for _, event := range user.GetDomainEvents() {
		// Publish failures must not fail the business operation
		_ = s.eventPublisher.Publish(ctx, event)
	}
	user.ClearDomainEvents()
}
