package generate_slots

// Request модель запроса на генерацию слотов
type Request struct {
	BusinessID  int64 // ID бизнеса
	HorizonDays int   // Горизонт генерации в днях; 0 = дефолтный горизонт
}

// Response модель ответа с результатами генерации
type Response struct {
	BusinessID   int64 // ID бизнеса
	HorizonDays  int   // Фактически использованный горизонт
	SlotsCreated int   // Количество созданных слотов
	SlotsDeleted int   // Количество удалённых будущих слотов перед вставкой
}
