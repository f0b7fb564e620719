package ai

// Фиксированные ответы диспетчера
const (
	MsgSelectModelFirst = "Iltimos, avval modelni tanlang:"
	MsgEmptyMessage     = "Uzr, bo‘sh xabar yuborildi. Iltimos, savol yozing."
	MsgNoAnswer         = "Uzr, hozir javob topilmadi. Iltimos qayta urinib ko‘ring."
	MsgInferenceError   = "Uzr, xatolik yuz berdi. Iltimos qayta urinib ko‘ring."
)
