// Package fuzztests houses Go fuzz harnesses for the record parser and the
// line conversion loop. They guard against panics and against the two
// directions disagreeing on arbitrary input.
//
// Назначение: прогонять произвольные байты через record.ParseLine и
// convert.Run, проверять обратимость encode/convert.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/record, internal/convert, internal/codec, internal/diag.

package fuzztests
