package cache

import "fmt"

// Ключи сеансового состояния. Сеанс привязан к uid пользователя:
// интерфейс не допускает параллельных сканирований в рамках одного сеанса.

// ViewKey — ключ активного экрана пользователя.
func ViewKey(userUID string) string {
	return fmt.Sprintf("session:view:%s", userUID)
}

// CurrentResultKey — ключ текущего результата сканирования.
func CurrentResultKey(userUID string) string {
	return fmt.Sprintf("session:result:%s", userUID)
}

// ProgressKey — ключ синтетического прогресса сканирования.
func ProgressKey(userUID string) string {
	return fmt.Sprintf("scan:progress:%s", userUID)
}
