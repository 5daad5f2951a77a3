package service

import (
	"context"
	"errors"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-rental/internal/apperr"
	"github.com/ukydev/fleet-rental/internal/auth"
	"github.com/ukydev/fleet-rental/internal/models"
)

// TokenIssuer checks credentials and signs tokens.
type TokenIssuer interface {
	CheckPassword(password, hash string) bool
	GenerateToken(user models.User) (string, error)
	GenerateRefreshToken() (string, error)
	TokenExpiry() time.Duration
}

// Accounts authenticates administrators and clients by mail and password.
type Accounts struct {
	admins  *AdministratorService
	clients *ClientService
	tokens  TokenIssuer
	now     func() time.Time
}

// NewAccounts also links both services to one mail space: a mail held by an
// administrator cannot be registered by a client, and the reverse.
func NewAccounts(admins *AdministratorService, clients *ClientService, tokens TokenIssuer) *Accounts {
	admins.others = append(admins.others, clients.store)
	clients.others = append(clients.others, admins.store)
	return &Accounts{admins: admins, clients: clients, tokens: tokens, now: time.Now}
}

// Login returns a signed token for valid credentials. Unknown mails and
// wrong passwords both yield auth.ErrInvalidCredentials.
func (a *Accounts) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	mail := strings.TrimSpace(req.Mail)
	if mail == "" || req.Password == "" {
		return nil, auth.ErrInvalidCredentials
	}

	user, err := a.find(ctx, mail)
	if err != nil {
		return nil, err
	}
	if !a.tokens.CheckPassword(req.Password, user.Identity().Password) {
		log.WithField("mail", mail).Warn("login rejected: wrong password")
		return nil, auth.ErrInvalidCredentials
	}
	if c, ok := user.(*models.Client); ok && c.Deactivated {
		return nil, auth.ErrUserInactive
	}

	token, err := a.tokens.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	refresh, err := a.tokens.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}
	return &models.LoginResponse{
		Token:        token,
		RefreshToken: refresh,
		Mail:         mail,
		Role:         user.Role(),
		ExpiresAt:    a.now().Add(a.tokens.TokenExpiry()).Unix(),
	}, nil
}

func (a *Accounts) find(ctx context.Context, mail string) (models.User, error) {
	admin, err := a.admins.FindByID(ctx, mail)
	if err == nil {
		return admin, nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}
	client, err := a.clients.store.FindByID(ctx, mail)
	if err == nil {
		return client, nil
	}
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, auth.ErrInvalidCredentials
	}
	return nil, err
}

// checkMailFree rejects mail when any of stores already holds it.
func checkMailFree(ctx context.Context, mail string, stores ...Lookup[string]) error {
	for _, st := range stores {
		taken, err := st.ExistsByID(ctx, mail)
		if err != nil {
			return err
		}
		if taken {
			return apperr.Validation("mail", "mail %s is already registered", mail)
		}
	}
	return nil
}
