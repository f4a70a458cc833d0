package scheduling_engine

import "github.com/suchimauz/booking-scheduling-engine/internal/core/domain"

type TimeSlotSlice []domain.TimeSlot

// quickSort — сортировка предложенных слотов по возрастанию начала.
// Строки "YYYY-MM-DDTHH:MM" сравниваются лексикографически корректно.
func (s TimeSlotSlice) quickSort() TimeSlotSlice {
	if len(s) < 2 {
		return s
	}

	// Выбираем опорный элемент
	pivot := s[len(s)/2]

	// Разделяем слайс на три части
	less := TimeSlotSlice{}
	equal := TimeSlotSlice{}
	greater := TimeSlotSlice{}

	for _, slot := range s {
		if slot.Start < pivot.Start {
			less = append(less, slot)
		} else if slot.Start == pivot.Start {
			equal = append(equal, slot)
		} else {
			greater = append(greater, slot)
		}
	}

	// Рекурсивно сортируем подмассивы и объединяем их
	return append(append(less.quickSort(), equal...), greater.quickSort()...)
}
