// Package uploadhttp реализует HTTP-интерфейс сервиса загрузок. Основные эндпоинты:
//   - GET / — статус сервиса в виде "<service> running...".
//   - POST / — multipart-загрузка с ключом в заголовке Authorization; ответ — сгенерированные имена, по одному на строку.
//   - GET /health — количество и суммарный размер файлов в каталоге загрузок.
//   - GET /metrics — метрики Prometheus, если они включены.
package uploadhttp
