package i18n

// catalog: ключ -> язык -> текст. Узбекские тексты сверяются с HR-отделом,
// русские — перевод один в один.
var catalog = map[string]map[string]string{
	// Онбординг
	"choose_language": {
		"uz": "Tilni tanlang / Выберите язык",
		"ru": "Tilni tanlang / Выберите язык",
	},
	"language_set": {
		"uz": "Til o'rnatildi: o'zbekcha",
		"ru": "Язык установлен: русский",
	},
	"choose_role": {
		"uz": "Rolingizni tanlang:",
		"ru": "Выберите вашу роль:",
	},
	"btn_role_worker": {
		"uz": "👷 Xodim",
		"ru": "👷 Сотрудник",
	},
	"btn_role_manager": {
		"uz": "💼 Menejer",
		"ru": "💼 Менеджер",
	},
	"role_conflict": {
		"uz": "Siz allaqachon boshqa rolda ro'yxatdan o'tgansiz.",
		"ru": "Вы уже зарегистрированы в другой роли.",
	},
	"ask_full_name": {
		"uz": "To'liq ismingizni kiriting (kamida 3 ta belgi):",
		"ru": "Введите ваше полное имя (не менее 3 символов):",
	},
	"name_too_short": {
		"uz": "Ism juda qisqa. Kamida 3 ta belgi kiriting.",
		"ru": "Имя слишком короткое. Введите не менее 3 символов.",
	},
	"registered_pending": {
		"uz": "Rahmat, %s! Ro'yxatdan o'tdingiz. Tasdiqlanishini kuting.",
		"ru": "Спасибо, %s! Вы зарегистрированы. Дождитесь подтверждения.",
	},
	"await_verification": {
		"uz": "Hisobingiz hali tasdiqlanmagan. Iltimos, kuting.",
		"ru": "Ваш аккаунт еще не подтвержден. Пожалуйста, подождите.",
	},
	"account_verified": {
		"uz": "✅ Hisobingiz tasdiqlandi! Endi botdan foydalanishingiz mumkin.",
		"ru": "✅ Ваш аккаунт подтвержден! Теперь вы можете пользоваться ботом.",
	},
	"registration_rejected": {
		"uz": "❌ Ro'yxatdan o'tish rad etildi. Ma'lumot uchun rahbariyatga murojaat qiling.",
		"ru": "❌ Регистрация отклонена. За подробностями обратитесь к руководству.",
	},

	// Главное меню
	"menu_title": {
		"uz": "Asosiy menyu. Kerakli amalni tanlang:",
		"ru": "Главное меню. Выберите действие:",
	},
	"btn_check_in": {
		"uz": "✅ Keldim",
		"ru": "✅ Пришел",
	},
	"btn_check_out": {
		"uz": "🏁 Ketdim",
		"ru": "🏁 Ушел",
	},
	"btn_request_leave": {
		"uz": "📝 Javob so'rash",
		"ru": "📝 Отпроситься",
	},
	"btn_late_comment": {
		"uz": "⏰ Kechikish sababi",
		"ru": "⏰ Причина опоздания",
	},
	"btn_my_requests": {
		"uz": "📋 Mening so'rovlarim",
		"ru": "📋 Мои заявки",
	},
	"btn_pending_requests": {
		"uz": "📥 Kutilayotgan so'rovlar",
		"ru": "📥 Заявки на рассмотрении",
	},
	"btn_pending_workers": {
		"uz": "👥 Yangi xodimlar",
		"ru": "👥 Новые сотрудники",
	},
	"btn_report": {
		"uz": "📊 Hisobot",
		"ru": "📊 Отчет",
	},
	"btn_cancel": {
		"uz": "✖️ Bekor qilish",
		"ru": "✖️ Отмена",
	},
	"cancelled": {
		"uz": "Amal bekor qilindi.",
		"ru": "Действие отменено.",
	},

	// Явка
	"checkin_ok": {
		"uz": "✅ Kelganingiz qayd etildi: %s",
		"ru": "✅ Приход отмечен: %s",
	},
	"checkin_already": {
		"uz": "Bugun kelganingiz allaqachon qayd etilgan.",
		"ru": "Приход за сегодня уже отмечен.",
	},
	"checkout_ok": {
		"uz": "🏁 Ketganingiz qayd etildi: %s",
		"ru": "🏁 Уход отмечен: %s",
	},
	"checkout_already": {
		"uz": "Bugun ketganingiz allaqachon qayd etilgan.",
		"ru": "Уход за сегодня уже отмечен.",
	},
	"checkin_required": {
		"uz": "Avval kelganingizni qayd eting.",
		"ru": "Сначала отметьте приход.",
	},
	"on_leave_active": {
		"uz": "Bugun sizda tasdiqlangan javob kuni. Qayd etish shart emas.",
		"ru": "Сегодня у вас одобренный отгул. Отмечаться не нужно.",
	},
	"late_prompt": {
		"uz": "Kechikish sababini yozing (kamida 3 ta belgi):",
		"ru": "Напишите причину опоздания (не менее 3 символов):",
	},
	"late_saved": {
		"uz": "Sabab saqlandi. Rahmat!",
		"ru": "Причина сохранена. Спасибо!",
	},

	// Заявки
	"choose_request_type": {
		"uz": "So'rov turini tanlang:",
		"ru": "Выберите тип заявки:",
	},
	"btn_daily": {
		"uz": "📅 Kunlik (butun kun)",
		"ru": "📅 Дневная (на весь день)",
	},
	"btn_hourly": {
		"uz": "🕐 Soatlik (kun ichida)",
		"ru": "🕐 Почасовая (в течение дня)",
	},
	"ask_leave_date": {
		"uz": "Qaysi kunga javob kerak? Sanani kiriting (KK.OO yoki KK.OO.YYYY):",
		"ru": "На какой день нужен отгул? Введите дату (ДД.ММ или ДД.ММ.ГГГГ):",
	},
	"ask_return_date": {
		"uz": "Qaysi kuni qaytasiz? Sanani kiriting yoki «O'sha kuni» tugmasini bosing:",
		"ru": "В какой день вернетесь? Введите дату или нажмите «В тот же день»:",
	},
	"btn_same_day": {
		"uz": "O'sha kuni",
		"ru": "В тот же день",
	},
	"ask_reason": {
		"uz": "Sababini yozing (kamida 3 ta belgi):",
		"ru": "Укажите причину (не менее 3 символов):",
	},
	"reason_too_short": {
		"uz": "Sabab juda qisqa. Kamida 3 ta belgi kiriting.",
		"ru": "Причина слишком короткая. Введите не менее 3 символов.",
	},
	"bad_date": {
		"uz": "Sana noto'g'ri. Format: KK.OO yoki KK.OO.YYYY, masalan 25.03",
		"ru": "Неверная дата. Формат: ДД.ММ или ДД.ММ.ГГГГ, например 25.03",
	},
	"date_in_past": {
		"uz": "O'tgan sanaga so'rov berib bo'lmaydi.",
		"ru": "Нельзя подать заявку на прошедшую дату.",
	},
	"return_before_leave": {
		"uz": "Qaytish sanasi ketish sanasidan oldin bo'lmasligi kerak.",
		"ru": "Дата возвращения не может быть раньше даты отгула.",
	},
	"choose_hourly_kind": {
		"uz": "Qaysi holat?",
		"ru": "Какая ситуация?",
	},
	"btn_coming_late": {
		"uz": "🌅 Kech kelaman",
		"ru": "🌅 Приду позже",
	},
	"btn_leaving_early": {
		"uz": "🌇 Erta ketaman",
		"ru": "🌇 Уйду раньше",
	},
	"ask_time": {
		"uz": "Vaqtni kiriting (SS:DD, masalan 16:30):",
		"ru": "Введите время (ЧЧ:ММ, например 16:30):",
	},
	"bad_time": {
		"uz": "Vaqt noto'g'ri. Format: SS:DD, masalan 16:30",
		"ru": "Неверное время. Формат: ЧЧ:ММ, например 16:30",
	},
	"time_outside_window": {
		"uz": "Vaqt ish soatlari ichida bo'lishi kerak (%02d:00 - %02d:00).",
		"ru": "Время должно быть в рабочих часах (%02d:00 - %02d:00).",
	},
	"time_not_future": {
		"uz": "Vaqt hozirgi vaqtdan keyin bo'lishi kerak.",
		"ru": "Время должно быть позже текущего.",
	},
	"request_created": {
		"uz": "✉️ So'rovingiz #%d yuborildi. Javobini kuting.",
		"ru": "✉️ Ваша заявка #%d отправлена. Ожидайте решения.",
	},

	// Уведомления менеджерам
	"notify_new_daily": {
		"uz": "📥 Yangi kunlik so'rov #%d\nXodim: %s\nSana: %s - %s\nSabab: %s",
		"ru": "📥 Новая дневная заявка #%d\nСотрудник: %s\nДата: %s - %s\nПричина: %s",
	},
	"notify_new_hourly": {
		"uz": "📥 Yangi soatlik so'rov #%d (%s)\nXodim: %s\nVaqt: %s\nSabab: %s",
		"ru": "📥 Новая почасовая заявка #%d (%s)\nСотрудник: %s\nВремя: %s\nПричина: %s",
	},
	"kind_coming_late": {
		"uz": "kech kelish",
		"ru": "опоздание",
	},
	"kind_leaving_early": {
		"uz": "erta ketish",
		"ru": "ранний уход",
	},
	"btn_approve": {
		"uz": "✅ Tasdiqlash",
		"ru": "✅ Одобрить",
	},
	"btn_reject": {
		"uz": "❌ Rad etish",
		"ru": "❌ Отклонить",
	},
	"btn_with_comment": {
		"uz": "💬 Izoh bilan",
		"ru": "💬 С комментарием",
	},
	"btn_without_comment": {
		"uz": "Izohsiz",
		"ru": "Без комментария",
	},
	"ask_decision_comment": {
		"uz": "Izoh yozing:",
		"ru": "Напишите комментарий:",
	},
	"decision_applied": {
		"uz": "Qaror qabul qilindi: #%d %s",
		"ru": "Решение принято: #%d %s",
	},
	"already_decided": {
		"uz": "Bu so'rov bo'yicha qaror allaqachon qabul qilingan.",
		"ru": "По этой заявке решение уже принято.",
	},
	"status_approved": {
		"uz": "tasdiqlandi ✅",
		"ru": "одобрена ✅",
	},
	"status_rejected": {
		"uz": "rad etildi ❌",
		"ru": "отклонена ❌",
	},
	"status_pending": {
		"uz": "kutilmoqda ⏳",
		"ru": "на рассмотрении ⏳",
	},
	"notify_decision_worker": {
		"uz": "Sizning #%d so'rovingiz %s",
		"ru": "Ваша заявка #%d %s",
	},
	"notify_decision_comment": {
		"uz": "Izoh: %s",
		"ru": "Комментарий: %s",
	},
	"notify_decision_broadcast": {
		"uz": "ℹ️ So'rov #%d (%s) %s",
		"ru": "ℹ️ Заявка #%d (%s) %s",
	},

	// Верификация
	"notify_new_worker": {
		"uz": "👤 Yangi xodim ro'yxatdan o'tdi: %s",
		"ru": "👤 Зарегистрирован новый сотрудник: %s",
	},
	"notify_new_manager": {
		"uz": "💼 Yangi menejer ro'yxatdan o'tdi: %s\nRolini tanlang:",
		"ru": "💼 Зарегистрирован новый менеджер: %s\nВыберите его роль:",
	},
	"btn_assign_pm": {
		"uz": "Loyiha menejeri",
		"ru": "Проект-менеджер",
	},
	"btn_assign_admin": {
		"uz": "Admin",
		"ru": "Админ",
	},
	"btn_assign_super": {
		"uz": "Super-admin",
		"ru": "Супер-админ",
	},
	"worker_verified": {
		"uz": "Xodim %s tasdiqlandi.",
		"ru": "Сотрудник %s подтвержден.",
	},
	"worker_rejected": {
		"uz": "Xodim %s rad etildi.",
		"ru": "Сотрудник %s отклонен.",
	},
	"no_pending_workers": {
		"uz": "Tasdiqlanmagan xodimlar yo'q.",
		"ru": "Нет неподтвержденных сотрудников.",
	},

	// Мои заявки / очереди
	"my_requests_title": {
		"uz": "Sizning so'rovlaringiz:",
		"ru": "Ваши заявки:",
	},
	"my_requests_empty": {
		"uz": "Sizda hali so'rovlar yo'q.",
		"ru": "У вас пока нет заявок.",
	},
	"pending_title": {
		"uz": "Kutilayotgan so'rovlar:",
		"ru": "Заявки на рассмотрении:",
	},
	"pending_empty": {
		"uz": "Kutilayotgan so'rovlar yo'q.",
		"ru": "Нет заявок на рассмотрении.",
	},
	"page_of": {
		"uz": "Sahifa %d / %d",
		"ru": "Страница %d из %d",
	},

	// Дайджест и напоминания
	"digest_title": {
		"uz": "⏳ %d kundan ortiq qaror kutayotgan so'rovlar:",
		"ru": "⏳ Заявки, ожидающие решения более %d дней:",
	},
	"digest_empty": {
		"uz": "Eskirgan so'rovlar yo'q.",
		"ru": "Просроченных заявок нет.",
	},
	"digest_summary": {
		"uz": "Jami %d ta eski so'rov. Birinchi xodimlar: %s",
		"ru": "Всего %d просроченных заявок. Первые сотрудники: %s",
	},
	"reminder_checkin": {
		"uz": "⏰ Eslatma: kelganingizni qayd etishni unutmang!",
		"ru": "⏰ Напоминание: не забудьте отметить приход!",
	},
	"reminder_checkout": {
		"uz": "⏰ Eslatma: ketganingizni qayd etishni unutmang!",
		"ru": "⏰ Напоминание: не забудьте отметить уход!",
	},

	// Сервисные сообщения
	"activated": {
		"uz": "Bildirishnomalar yoqildi.",
		"ru": "Уведомления включены.",
	},
	"deactivated": {
		"uz": "Bildirishnomalar o'chirildi.",
		"ru": "Уведомления выключены.",
	},
	"unauthorized": {
		"uz": "Bu amal uchun huquqingiz yo'q.",
		"ru": "У вас нет прав для этого действия.",
	},
	"not_found": {
		"uz": "Ma'lumot topilmadi.",
		"ru": "Данные не найдены.",
	},
	"internal_error": {
		"uz": "Xatolik yuz berdi. Keyinroq urinib ko'ring.",
		"ru": "Произошла ошибка. Попробуйте позже.",
	},
	"rate_limited": {
		"uz": "Juda ko'p so'rov. Biroz kuting.",
		"ru": "Слишком много запросов. Подождите немного.",
	},
	"unknown_command": {
		"uz": "Tushunarsiz buyruq. /start ni bosing.",
		"ru": "Непонятная команда. Нажмите /start.",
	},
	"report_caption": {
		"uz": "Davomat hisoboti: %s",
		"ru": "Отчет по посещаемости: %s",
	},
	"report_failed": {
		"uz": "Hisobot tayyorlashda xatolik.",
		"ru": "Ошибка при формировании отчета.",
	},
}
