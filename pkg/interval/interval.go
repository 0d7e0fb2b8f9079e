// Package interval содержит примитивы для работы с полуоткрытыми
// временными интервалами [start, end). Все проверки пересечения и
// вложенности в сервисе должны выражаться через этот пакет, чтобы
// граничные случаи ("соседние интервалы не конфликтуют") трактовались
// одинаково во всех доменах.
//
// Пакет намеренно не имеет зависимостей — он переиспользуется и вне
// расписания консультаций.
package interval

import "time"

// Overlaps проверяет пересечение интервалов [aStart, aEnd) и [bStart, bEnd).
// Интервалы, соприкасающиеся границами, НЕ считаются пересекающимися.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Within проверяет, что интервал [innerStart, innerEnd) целиком лежит
// внутри интервала [outerStart, outerEnd). Совпадение границ допустимо.
func Within(innerStart, innerEnd, outerStart, outerEnd time.Time) bool {
	return !innerStart.Before(outerStart) && !innerEnd.After(outerEnd)
}
