package app

// Command представляет режим запуска приложения.
type Command string

const (
	// CommandServe — запуск API-сервера.
	CommandServe Command = "serve"
	// CommandWorker — запуск обслуживающего воркера.
	CommandWorker Command = "worker"
	// CommandMigrate — применение миграций базы данных.
	CommandMigrate Command = "migrate"
	// CommandHealthcheck — проверка живости сервера.
	// Используется как Docker-healthcheck в distroless-образе.
	CommandHealthcheck Command = "healthcheck"
)

// ParseCommand разбирает сабкоманду из аргументов командной строки.
// Пустые аргументы и неизвестные команды трактуются как CommandServe.
func ParseCommand(args []string) Command {
	if len(args) == 0 {
		return CommandServe
	}

	switch args[0] {
	case "worker":
		return CommandWorker
	case "serve":
		return CommandServe
	case "migrate":
		return CommandMigrate
	case "healthcheck":
		return CommandHealthcheck
	default:
		return CommandServe
	}
}
