// pkg/constants/constants.go
package constants

//============== COLLECTIONS ==============

// Имена коллекций документного хранилища.
const (
	CollectionEquipment  = "equipment"
	CollectionTeams      = "teams"
	CollectionRequests   = "maintenanceRequests"
	CollectionCategories = "categories"
	CollectionWorkCenter = "workCenters"
	CollectionUsers      = "users"
)

//============== CACHE KEYS ==============

// Префиксы для ключей в Redis/кеше.
const (
	// Ключ, указывающий, что аккаунт заблокирован из-за неудачных попыток входа.
	// Формат: lockout:<userID> -> "locked"
	CacheKeyLockout = "lockout:%s"

	// Ключ для подсчета неудачных попыток входа.
	// Формат: login_attempts:<userID> -> count
	CacheKeyLoginAttempts = "login_attempts:%s"
)

//============== EVENTS ==============

const (
	EventRequestScrapped = "request.scrapped"
)
