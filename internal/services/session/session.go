// Package session содержит бизнес-логику сеанса пользователя:
// вход с частичным профилем, выход, редактирование профиля, смену тарифа
// и ведение активного экрана через конечный автомат представления.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/purescan-ai/purescan-backend/internal/cache"
	"github.com/purescan-ai/purescan-backend/internal/lib/jwt"
	"github.com/purescan-ai/purescan-backend/internal/lib/sl"
	"github.com/purescan-ai/purescan-backend/internal/models"
	"github.com/purescan-ai/purescan-backend/internal/view"
)

// sessionTTL — время жизни сеансовых ключей в кеше.
const sessionTTL = 30 * 24 * time.Hour

// UserRepository определяет методы для работы с профилями в хранилище.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его uid.
	CreateUser(ctx context.Context, user models.User) (string, error)
	// GetUser возвращает пользователя по uid.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	// UpdateUser заменяет профиль целиком.
	UpdateUser(ctx context.Context, user models.User) (int, error)
	// DeleteUser удаляет пользователя вместе с историей.
	DeleteUser(ctx context.Context, userUID string) error
	// UpdatePlan устанавливает тарифный план.
	UpdatePlan(ctx context.Context, userUID string, plan models.Plan) error
}

// Cache описывает методы для кэширования сеансового состояния.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Service реализует операции сеанса.
type Service struct {
	repo         UserRepository
	cache        Cache
	jwtMaker     jwt.Maker
	log          *slog.Logger
	billingDelay time.Duration
}

// New создает новый экземпляр Service.
func New(repo UserRepository, cache Cache, jwtMaker jwt.Maker, log *slog.Logger, billingDelay time.Duration) *Service {
	return &Service{
		repo:         repo,
		cache:        cache,
		jwtMaker:     jwtMaker,
		log:          log,
		billingDelay: billingDelay,
	}
}

// Login собирает нового пользователя из частичного профиля, добивая
// недостающие поля значениями по умолчанию, сохраняет его и выдаёт токен.
// Любая предоставленная идентичность принимается без проверки.
func (s *Service) Login(ctx context.Context, profile models.LoginProfile) (*models.User, string, error) {
	const op = "session.Login"

	user := models.User{
		Email:      profile.Email,
		Name:       profile.Name,
		Username:   profile.Username,
		TelegramID: profile.TelegramID,
		PhotoURL:   profile.PhotoURL,
		Plan:       models.PlanFree,
		ScansLeft:  models.DefaultFreeScans,
		Allergies:  []string{},
		Settings: models.Settings{
			Notifications: true,
			DarkMode:      true,
		},
	}
	if user.Email == "" {
		user.Email = "user@purescan.ai"
	}
	if user.Name == "" {
		user.Name = "Пользователь"
	}

	uid, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	user.UID = uid

	token, err := s.jwtMaker.GenerateToken(uid, user.Username, string(user.Plan))
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cache.Set(ctx, cache.ViewKey(uid), view.Dashboard, sessionTTL); err != nil {
		s.log.Warn("failed to cache view state", sl.Err(err))
	}
	s.log.Info("user logged in", slog.String("uid", uid))

	return &user, token, nil
}

// Logout удаляет пользователя и его сеансовые ключи; экран возвращается
// на лендинг самим фактом отсутствия сеанса.
func (s *Service) Logout(ctx context.Context, userUID string) error {
	const op = "session.Logout"

	if err := s.repo.DeleteUser(ctx, userUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	for _, key := range []string{
		cache.ViewKey(userUID),
		cache.CurrentResultKey(userUID),
		cache.ProgressKey(userUID),
	} {
		if err := s.cache.Invalidate(ctx, key); err != nil {
			s.log.Warn("failed to invalidate session key", slog.String("key", key), sl.Err(err))
		}
	}
	s.log.Info("user logged out", slog.String("uid", userUID))
	return nil
}

// Profile возвращает профиль пользователя.
func (s *Service) Profile(ctx context.Context, userUID string) (*models.User, error) {
	return s.repo.GetUser(ctx, userUID)
}

// Update заменяет профиль целиком и сразу сохраняет его.
func (s *Service) Update(ctx context.Context, user models.User) error {
	const op = "session.Update"

	if !user.Plan.Valid() {
		return fmt.Errorf("%s: unknown plan %q", op, user.Plan)
	}
	rows, err := s.repo.UpdateUser(ctx, user)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rows == 0 {
		return fmt.Errorf("%s: user %s not found", op, user.UID)
	}
	s.log.Info("user profile updated", slog.String("uid", user.UID))
	return nil
}

// Upgrade имитирует биллинговый круговой запрос фиксированной задержкой
// и затем устанавливает тарифный план. Для неаутентифицированного вызова
// план не меняется, а экран становится AUTH.
func (s *Service) Upgrade(ctx context.Context, userUID string, plan models.Plan) (view.State, error) {
	const op = "session.Upgrade"

	if userUID == "" {
		s.log.Info("upgrade requested without session, redirecting to auth")
		return view.Auth, nil
	}
	if !plan.Valid() {
		return "", fmt.Errorf("%s: unknown plan %q", op, plan)
	}

	select {
	case <-time.After(s.billingDelay):
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	}

	if err := s.repo.UpdatePlan(ctx, userUID, plan); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Set(ctx, cache.ViewKey(userUID), view.Dashboard, sessionTTL); err != nil {
		s.log.Warn("failed to cache view state", sl.Err(err))
	}
	s.log.Info("plan upgraded", slog.String("uid", userUID), slog.String("plan", string(plan)))
	return view.Dashboard, nil
}

// View возвращает активный экран сеанса. Отсутствие или порча сеансовых
// данных деградирует к стартовому экрану, а не к ошибке.
func (s *Service) View(ctx context.Context, userUID string) view.State {
	if userUID == "" {
		return view.Initial(false)
	}

	var cached view.State
	found, err := s.cache.Get(ctx, cache.ViewKey(userUID), &cached)
	if err != nil {
		s.log.Warn("failed to read view state", sl.Err(err))
	}
	if found && cached != "" {
		return cached
	}

	if _, err := s.repo.GetUser(ctx, userUID); err != nil {
		return view.Initial(false)
	}
	return view.Initial(true)
}

// Apply проводит активный экран через автомат переходов и сохраняет результат.
func (s *Service) Apply(ctx context.Context, userUID string, event view.Event) view.State {
	current := s.View(ctx, userUID)
	next := view.Next(current, event, userUID != "")
	if userUID != "" {
		if err := s.cache.Set(ctx, cache.ViewKey(userUID), next, sessionTTL); err != nil {
			s.log.Warn("failed to cache view state", sl.Err(err))
		}
	}
	return next
}
