package auth

import (
	"github.com/google/uuid"
	"github.com/workermill-examples/shipapi/internal/application/dto"
	"github.com/workermill-examples/shipapi/internal/domain"
	"github.com/workermill-examples/shipapi/internal/domain/entity"
	"github.com/workermill-examples/shipapi/internal/domain/repository"
	"github.com/workermill-examples/shipapi/pkg/apikey"
	"github.com/workermill-examples/shipapi/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// AuthUseCase casos de uso de autenticación: registro, login, refresh y perfil.
type AuthUseCase struct {
	userRepo repository.UserRepository
	tokens   *jwt.Manager
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, tokens *jwt.Manager) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, tokens: tokens}
}

// Register crea un usuario: hashea password con bcrypt, genera su API key y
// persiste. La key en claro solo viaja en esta respuesta; en DB queda el hash.
// Devuelve ErrEmailAlreadyExists si el email ya está registrado.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.RegisterResponse, error) {
	existing, _ := uc.userRepo.FindByEmail(in.Email)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	key, keyHash, keyPrefix, err := apikey.Generate()
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: string(hash),
		Role:         entity.RoleUser,
		APIKeyHash:   &keyHash,
		APIKeyPrefix: &keyPrefix,
		IsActive:     true,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return &dto.RegisterResponse{User: *toUserResponse(user), APIKey: key}, nil
}

// Login verifica email/password y emite el par access/refresh.
// Credenciales inválidas o cuenta inactiva devuelven siempre ErrUnauthorized,
// sin distinguir si el email existe.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.TokenPairResponse, error) {
	user, err := uc.userRepo.FindByEmail(in.Email)
	if err != nil || user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, domain.ErrUnauthorized
	}
	return uc.tokenPair(user)
}

// Refresh valida el refresh token y emite un par nuevo. Los claims de rol se
// releen de la DB, no del token viejo.
func (uc *AuthUseCase) Refresh(in dto.RefreshRequest) (*dto.TokenPairResponse, error) {
	claims, err := uc.tokens.Parse(in.RefreshToken, jwt.TypeRefresh)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.userRepo.GetByID(claims.UserID)
	if err != nil || user == nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, domain.ErrUnauthorized
	}
	return uc.tokenPair(user)
}

// Me devuelve el perfil del usuario autenticado.
func (uc *AuthUseCase) Me(userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func (uc *AuthUseCase) tokenPair(user *entity.User) (*dto.TokenPairResponse, error) {
	access, err := uc.tokens.GenerateAccess(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	refresh, err := uc.tokens.GenerateRefresh(user.ID)
	if err != nil {
		return nil, err
	}
	return &dto.TokenPairResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    int64(uc.tokens.AccessTTL().Seconds()),
		User:         *toUserResponse(user),
	}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
