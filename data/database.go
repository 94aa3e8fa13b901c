package data

import (
	"context"
	"embed"
	"fmt"
	"time"

	"loom_server_go/logging"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // Драйвер SQLite, импортируется для побочных эффектов (регистрации драйвера)
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

// nowFunc возвращает текущее время для created_at / updated_at.
// Все метки времени хранятся в UTC, чтобы строковое сравнение в SQLite совпадало с хронологическим.
var nowFunc = func() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// Store владеет пулом подключений к БД. Глобальных подключений нет:
// Store создается при старте и передается сервисам через конструктор.
type Store struct {
	db  *sqlx.DB
	log logging.Logger
}

// dsn добавляет к пути параметры драйвера: внешние ключи (нужны для каскадного удаления)
// и ожидание блокировки.
func dsn(path string) string {
	return path + "?_foreign_keys=on&_busy_timeout=5000"
}

// Open подключается к файлу SQLite по пути path (":memory:" для БД в памяти).
func Open(ctx context.Context, path string, log logging.Logger) (*Store, error) {
	db, err := sqlx.ConnectContext(ctx, "sqlite3", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database %s: %w", path, err)
	}

	// SQLite допускает одного писателя; одно соединение к тому же
	// сохраняет общую БД ":memory:" для всех запросов.
	db.SetMaxOpenConns(1)

	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database %s: %w", path, err)
	}
	log.Info(ctx, "подключение к базе данных установлено", "path", path)
	return NewStore(db, log), nil
}

// NewStore оборачивает готовое подключение (используется в тестах с sqlmock).
func NewStore(db *sqlx.DB, log logging.Logger) *Store {
	return &Store{db: db, log: log}
}

// DB возвращает пул подключений для запросов вне транзакции.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Ping проверяет доступность БД.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close закрывает пул подключений.
func (s *Store) Close() error {
	return s.db.Close()
}

// WithTx начинает транзакцию, выполняет fn и фиксирует ее при успехе.
// При ошибке или панике транзакция откатывается, паника пробрасывается дальше.
// Внутри fn нужно пользоваться только tx: пул ограничен одним соединением.
func (s *Store) WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("WithTx: ошибка начала транзакции: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				s.log.Error(ctx, "ошибка отката транзакции", "error", rbErr)
			}
			return
		}
		if err = tx.Commit(); err != nil {
			err = fmt.Errorf("WithTx: ошибка фиксации транзакции: %w", err)
		}
	}()

	return fn(tx)
}

func (s *Store) prepareGoose() error {
	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(logging.GooseLogger{L: s.log.With("component", "migrations")})
	return goose.SetDialect("sqlite3")
}

// Migrate применяет все встроенные миграции.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.prepareGoose(); err != nil {
		return fmt.Errorf("Migrate: %w", err)
	}
	if err := goose.UpContext(ctx, s.db.DB, migrationsDir); err != nil {
		return fmt.Errorf("Migrate: ошибка применения миграций: %w", err)
	}
	return nil
}

// MigrateDown откатывает последнюю примененную миграцию.
func (s *Store) MigrateDown(ctx context.Context) error {
	if err := s.prepareGoose(); err != nil {
		return fmt.Errorf("MigrateDown: %w", err)
	}
	if err := goose.DownContext(ctx, s.db.DB, migrationsDir); err != nil {
		return fmt.Errorf("MigrateDown: ошибка отката миграции: %w", err)
	}
	return nil
}

// MigrationStatus выводит в лог состояние всех миграций.
func (s *Store) MigrationStatus(ctx context.Context) error {
	if err := s.prepareGoose(); err != nil {
		return fmt.Errorf("MigrationStatus: %w", err)
	}
	return goose.StatusContext(ctx, s.db.DB, migrationsDir)
}

// SchemaVersion возвращает номер последней примененной миграции.
func (s *Store) SchemaVersion(ctx context.Context) (int64, error) {
	if err := s.prepareGoose(); err != nil {
		return 0, fmt.Errorf("SchemaVersion: %w", err)
	}
	return goose.GetDBVersionContext(ctx, s.db.DB)
}
