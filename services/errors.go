package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ресурс не найден (универсальная)
	ErrNotFound = errors.New("requested resource not found")

	// Ошибки валидации и бизнес-правил
	ErrValidationFailed       = errors.New("validation failed")
	ErrInvalidCredentials     = errors.New("invalid username or password")
	ErrTournamentTypeInvalid  = errors.New("invalid tournament type")
	ErrScoreFieldInvalid      = errors.New("invalid score field")
	ErrScoreTargetRequired    = errors.New("fixture key and row id are required")
	ErrCommentTextRequired    = errors.New("comment text is required")
	ErrAccessLevelInvalid     = errors.New("invalid access level")
	ErrUnsupportedImageType   = errors.New("unsupported image content type")
	ErrLiveMatchAlreadyExists = errors.New("match is already live")

	// Ошибки конфликтов
	ErrTournamentNameConflict = errors.New("tournament name already exists")

	// Ошибки аутентификации и авторизации
	ErrForbiddenOperation = errors.New("operation not allowed for the current user")
	ErrAdminImmutable     = errors.New("admin account cannot be modified")

	// Ошибки, специфичные для сущностей
	ErrUserNotFound       = errors.New("user not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrCommentNotFound    = errors.New("comment not found")
	ErrLiveMatchNotFound  = errors.New("live match not found")

	// Инфраструктура
	ErrUploaderUnavailable = errors.New("file storage is not configured")
)
