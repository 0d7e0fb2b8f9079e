package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/mindigo/appointment-service/internal/domain"
	"github.com/mindigo/appointment-service/internal/integrations/mailservice"
)

// Код ошибки PostgreSQL при сбое сериализации конкурирующих транзакций
const pqSerializationFailure = "40001"

// UseCase use case для создания записи к консультанту
type UseCase struct {
	appointmentRepo AppointmentRepository
	windowRepo      WindowRepository
	exceptionRepo   ExceptionRepository
	policies        PolicyResolver
	authClient      AuthServiceClient
	mailClient      MailServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	windowRepo WindowRepository,
	exceptionRepo ExceptionRepository,
	policies PolicyResolver,
	authClient AuthServiceClient,
	mailClient MailServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		windowRepo:      windowRepo,
		exceptionRepo:   exceptionRepo,
		policies:        policies,
		authClient:      authClient,
		mailClient:      mailClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи.
// Проверка доступности и вставка выполняются в сериализуемой транзакции:
// конкурирующие попытки занять один интервал у одного консультанта
// сериализуются блокировкой строк дня, проигравшая получает ErrSlotUnavailable.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: client=%d, counselor=%d, start=%s",
		req.ClientID, req.CounselorID, req.StartTime.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Начавшийся или прошедший интервал занять нельзя
	if !req.StartTime.After(now) {
		uc.logger.Warn("CreateAppointment: start %s is in the past", req.StartTime.Format(time.RFC3339))
		return nil, fmt.Errorf("%w: start time is in the past", ErrSlotUnavailable)
	}

	// 3. Политика консультанта: горизонт, длительность, автоподтверждение
	policy, err := uc.policies.Resolve(ctx, req.CounselorID)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to resolve policy for counselor=%d: %v", req.CounselorID, err)
		return nil, fmt.Errorf("%w: failed to resolve policy: %v", ErrInternal, err)
	}

	if domain.DateOnly(req.StartTime).After(policy.MaxBookingDate(now)) {
		uc.logger.Warn("CreateAppointment: date %s is beyond %d-day horizon for counselor=%d",
			req.StartTime.Format(domain.DateFormat), policy.MaxBookingDays, req.CounselorID)
		return nil, fmt.Errorf("%w: can only book %d days in advance", ErrHorizonExceeded, policy.MaxBookingDays)
	}

	endTime := req.StartTime.Add(time.Duration(policy.DefaultSlotDurationMinutes) * time.Minute)

	// 4. Начальный статус определяется политикой автоподтверждения
	initialStatus := domain.StatusPending
	if policy.AutoAcceptAppointments {
		initialStatus = domain.StatusConfirmed
	}

	// 5. Email консультанта для денормализации и уведомлений.
	// Недоступность AuthService бронирование не блокирует.
	counselorEmail := ""
	if profile, err := uc.authClient.GetProfile(ctx, req.CounselorID); err == nil {
		counselorEmail = profile.Email
	} else {
		uc.logger.Warn("CreateAppointment: failed to get counselor profile id=%d: %v", req.CounselorID, err)
	}

	var result *domain.Appointment

	// 6. Проверка доступности и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := uc.isBookable(txCtx, req.CounselorID, req.StartTime, endTime); err != nil {
			return err
		}

		created, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			ClientID:       req.ClientID,
			CounselorID:    req.CounselorID,
			ClientEmail:    req.ClientEmail,
			CounselorEmail: counselorEmail,
			StartTime:      req.StartTime,
			EndTime:        endTime,
			Status:         initialStatus,
			ClientNotes:    req.ClientNotes,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Сбой сериализации - проиграли гонку за интервал
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqSerializationFailure {
			uc.logger.Warn("CreateAppointment: serialization failure for counselor=%d, start=%s",
				req.CounselorID, req.StartTime.Format(time.RFC3339))
			return nil, fmt.Errorf("%w: concurrent booking detected", ErrSlotUnavailable)
		}
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d, status=%s", result.ID, result.Status)

	counselorName := uc.authClient.GetCounselorName(ctx, req.CounselorID)

	// 7. Уведомление участникам (fire-and-forget)
	uc.mailClient.SendAsync(&mailservice.NotificationRequest{
		ClientEmail:     result.ClientEmail,
		CounselorEmail:  result.CounselorEmail,
		CounselorName:   counselorName,
		Action:          mailservice.ActionCreated,
		AppointmentID:   result.ID,
		StartTime:       result.StartTime.Format(time.RFC3339),
		EndTime:         result.EndTime.Format(time.RFC3339),
		DurationMinutes: policy.DefaultSlotDurationMinutes,
		Status:          string(result.Status),
	})

	return &Response{
		ID:              result.ID,
		ClientID:        result.ClientID,
		CounselorID:     result.CounselorID,
		CounselorName:   counselorName,
		StartTime:       result.StartTime,
		EndTime:         result.EndTime,
		DurationMinutes: policy.DefaultSlotDurationMinutes,
		Status:          string(result.Status),
		ClientNotes:     result.ClientNotes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}
