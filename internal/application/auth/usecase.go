package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/agrovida/agroops-api/internal/application/dto"
	"github.com/agrovida/agroops-api/internal/domain"
	"github.com/agrovida/agroops-api/internal/domain/entity"
	"github.com/agrovida/agroops-api/internal/domain/repository"
	"github.com/agrovida/agroops-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
// El token emitido lleva la identidad de tenant completa (company, rol, sedes);
// después del login ningún endpoint vuelve a confiar en ids enviados por el cliente.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	roleRepo    repository.RoleRepository
	jwtCfg      JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	companyRepo repository.CompanyRepository,
	roleRepo repository.RoleRepository,
	jwtCfg JWTConfig,
) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, companyRepo: companyRepo, roleRepo: roleRepo, jwtCfg: jwtCfg}
}

// RegisterUser crea un usuario: valida empresa, cuota del plan y rol, hashea el
// password con bcrypt y persiste. Devuelve ErrEmailAlreadyExists si el email ya
// existe en esa empresa.
func (uc *AuthUseCase) RegisterUser(in dto.RegisterRequest) (*dto.UserResponse, error) {
	if in.CompanyID == "" || in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.userRepo.GetByEmailAndCompany(in.Email, in.CompanyID)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	company, err := uc.companyRepo.GetByID(in.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if company.Status != entity.CompanyStatusActive {
		return nil, domain.ErrForbidden
	}

	count, err := uc.userRepo.CountByCompany(in.CompanyID)
	if err != nil {
		return nil, err
	}
	if count >= int64(company.UserQuota) {
		return nil, domain.ErrQuotaExceeded
	}

	if in.RoleID != "" {
		role, err := uc.roleRepo.GetByID(in.CompanyID, in.RoleID)
		if err != nil {
			return nil, err
		}
		if role == nil {
			return nil, domain.ErrNotFound
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = in.Email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    in.CompanyID,
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		RoleID:       in.RoleID,
		FacilityIDs:  in.FacilityIDs,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// Login verifica email/password, exige empresa activa y genera el JWT con los
// claims de sesión completos.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != entity.UserStatusActive {
		return nil, domain.ErrForbidden
	}
	company, err := uc.companyRepo.GetByID(user.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil || company.Status != entity.CompanyStatusActive {
		return nil, domain.ErrForbidden
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.SessionClaims{
		UserID:      user.ID,
		CompanyID:   user.CompanyID,
		RoleID:      user.RoleID,
		FacilityIDs: user.FacilityIDs,
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *ToUserResponse(user),
	}, nil
}

// ToUserResponse mapea la entidad a su representación pública.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          u.ID,
		CompanyID:   u.CompanyID,
		Email:       u.Email,
		Name:        u.Name,
		RoleID:      u.RoleID,
		FacilityIDs: u.FacilityIDs,
		Status:      u.Status,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
