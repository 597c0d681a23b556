// Package view реализует конечный автомат экранов приложения.
// Состояние — тег активного экрана, переходы — чистая функция Next
// от текущего состояния и пользовательского события. Автомат не хранит
// стек истории: возврат всегда ведёт на фиксированный экран по умолчанию.
package view

// State — тег активного экрана.
type State string

// Экраны приложения.
const (
	Landing      State = "LANDING"
	Auth         State = "AUTH"
	Dashboard    State = "DASHBOARD"
	Scan         State = "SCAN"
	Result       State = "RESULT"
	Subscription State = "SUBSCRIPTION"
	Profile      State = "PROFILE"
)

// Event — пользовательское событие, запускающее переход.
// Фоновые процессы переходов не инициируют.
type Event string

// События переходов.
const (
	EventStart        Event = "start"         // лендинг: начать
	EventPricing      Event = "pricing"       // лендинг: тарифы
	EventLoginOK      Event = "login_ok"      // успешный вход
	EventScan         Event = "scan"          // открыть сканер
	EventUpgrade      Event = "upgrade"       // открыть тарифы
	EventHistoryOpen  Event = "history_open"  // открыть запись истории
	EventScanComplete Event = "scan_complete" // сканирование завершено
	EventScanCancel   Event = "scan_cancel"   // сканирование отменено
	EventBack         Event = "back"          // назад с экрана результата
	EventScanNew      Event = "scan_new"      // новое сканирование с результата
	EventUpgradeOK    Event = "upgrade_ok"    // успешная смена тарифа
	EventNeedAuth     Event = "need_auth"     // действие требует входа
	EventProfile      Event = "profile"       // открыть профиль (только с auth)
	EventLogout       Event = "logout"        // выход
)

// Initial возвращает стартовый экран: DASHBOARD при наличии
// сохранённого пользователя, иначе LANDING.
func Initial(authenticated bool) State {
	if authenticated {
		return Dashboard
	}
	return Landing
}

// fallback — экран по умолчанию для возврата; стека истории нет.
func fallback(authenticated bool) State {
	if authenticated {
		return Dashboard
	}
	return Landing
}

// Next вычисляет следующий экран. Неизвестные для текущего экрана события
// оставляют состояние без изменений: автомат никогда не ошибается,
// а деградирует к прежнему безопасному состоянию.
func Next(s State, e Event, authenticated bool) State {
	// Сквозные события не зависят от текущего экрана.
	switch e {
	case EventLogout:
		return Landing
	case EventNeedAuth:
		return Auth
	case EventProfile:
		if authenticated {
			return Profile
		}
		return s
	case EventHistoryOpen:
		if authenticated {
			return Result
		}
		return s
	}

	switch s {
	case Landing:
		switch e {
		case EventStart:
			return Auth
		case EventPricing:
			return Subscription
		}
	case Auth:
		if e == EventLoginOK {
			return Dashboard
		}
	case Dashboard:
		switch e {
		case EventScan:
			return Scan
		case EventUpgrade:
			return Subscription
		}
	case Scan:
		switch e {
		case EventScanComplete:
			return Result
		case EventScanCancel:
			return fallback(authenticated)
		}
	case Result:
		switch e {
		case EventBack:
			return fallback(authenticated)
		case EventScanNew:
			return Scan
		}
	case Subscription:
		if e == EventUpgradeOK {
			return Dashboard
		}
	case Profile:
		// Выход обработан выше; других переходов с профиля нет.
	}
	return s
}
