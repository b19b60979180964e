package models

import "io"

// UploadPart — одна часть multipart-запроса: исходное имя (может быть пустым) и ленивое тело.
type UploadPart struct {
	FileName string
	Body     io.Reader
}

// StoredFile связывает сгенерированное имя с исходным; исходное имя попадает только в логи.
type StoredFile struct {
	Name     string
	Original string
	Size     int64
}

// UploadResult возвращается после успешной обработки всех частей запроса.
type UploadResult struct {
	Identifier string
	Files      []StoredFile
}

// Names возвращает сгенерированные имена в порядке загрузки.
func (r UploadResult) Names() []string {
	out := make([]string, 0, len(r.Files))
	for _, f := range r.Files {
		out = append(out, f.Name)
	}
	return out
}
