package expense

import (
	"github.com/m04kA/SMC-EventLedger/pkg/dbmetrics"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
