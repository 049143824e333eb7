// Package version хранит сведения о сборке, проставляемые через -ldflags:
//
//	-X .../internal/version.version=1.2.3
//	-X .../internal/version.commit=abc1234
//	-X .../internal/version.date=2026-09-01
package version

import "fmt"

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Info возвращает версию, коммит и дату сборки.
func Info() (v, c, d string) { return version, commit, date }

// String собирает сведения о сборке в одну строку для health-ответа и логов.
func String() string {
	return fmt.Sprintf("version=%s commit=%s date=%s", version, commit, date)
}
