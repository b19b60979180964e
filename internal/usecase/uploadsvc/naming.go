package uploadsvc

import "strings"

const (
	prefixLen   = 5
	bareNameLen = 6
)

// TargetName строит имя файла на диске: 5 случайных символов + расширение исходного
// имени или 6 символов, если расширения нет.
func TargetName(gen NameGenerator, original string) (string, error) {
	if ext, ok := extension(original); ok {
		prefix, err := gen.Generate(prefixLen)
		if err != nil {
			return "", err
		}
		return prefix + "." + ext, nil
	}

	return gen.Generate(bareNameLen)
}

// extension возвращает суффикс после последней точки; пустой суффикс не считается расширением.
func extension(name string) (string, bool) {
	i := strings.LastIndexByte(name, '.')
	if i < 0 || i == len(name)-1 {
		return "", false
	}
	return name[i+1:], true
}
