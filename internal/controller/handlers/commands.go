package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireAccess(ctx, b, update); !ok {
		return
	}

	welcomeText := fmt.Sprintf(
		"👋 Привет, %s!\n\n"+
			"Это бот-ежедневник: записи клиентов, учебное расписание и мероприятия в одном календаре.\n\n"+
			"Основные команды:\n"+
			"/today - Календарь на сегодня\n"+
			"/tomorrow - Календарь на завтра\n"+
			"/week - Расписание недели картинкой\n"+
			"/pending - Неподтверждённые записи\n"+
			"/help - Полная справка",
		update.Message.From.FirstName,
	)

	h.sendText(ctx, b, update.Message.Chat.ID, welcomeText)
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireAccess(ctx, b, update); !ok {
		return
	}

	helpText := "📚 Справка по командам:\n\n" +
		"Календарь:\n" +
		"/today - Календарь на сегодня\n" +
		"/tomorrow - Календарь на завтра\n" +
		"/week - Расписание недели картинкой\n" +
		"/slots ДАТА ID_УСЛУГИ - Свободные окна на дату\n\n" +
		"Записи:\n" +
		"/pending - Записи, ожидающие подтверждения\n" +
		"/book ДАТА ВРЕМЯ ID_УСЛУГИ ID_КЛИЕНТА - Записать клиента\n" +
		"/clients - Список клиентов\n" +
		"/client_add ИМЯ [ТЕЛЕФОН] - Добавить клиента\n\n" +
		"Услуги:\n" +
		"/service_list - Список услуг\n" +
		"/service_add НАЗВАНИЕ ДЛИТЕЛЬНОСТЬ ЦЕНА - Создать услугу\n" +
		"/service_toggle ID - Включить или скрыть услугу\n" +
		"/service_delete ID - Удалить услугу\n\n" +
		"Мероприятия:\n" +
		"/event_add ДАТА НАЧАЛО КОНЕЦ НАЗВАНИЕ - Добавить мероприятие\n" +
		"/event_add - То же самое по шагам\n" +
		"/event_list - Ближайшие мероприятия\n" +
		"/event_delete ID - Удалить мероприятие\n\n" +
		"Учебное расписание:\n" +
		"/study_set ДЕНЬ НАЧАЛО КОНЕЦ - Задать учёбу на день недели\n" +
		"/study_clear ДЕНЬ - Очистить день\n" +
		"/study_view - Показать неделю\n\n" +
		"Блокировка дат:\n" +
		"/block_date ДАТА - Заблокировать дату\n" +
		"/unblock_date ID - Снять блокировку\n" +
		"/blocked_list - Список заблокированных дат\n\n" +
		"Настройки:\n" +
		"/settings - Текущие настройки\n" +
		"/set_hours НАЧАЛО КОНЕЦ - Рабочие часы\n" +
		"/set_padding ПОДГОТОВКА БУФЕР - Отступы в минутах\n" +
		"/work_priority on|off - Приоритет работы над учёбой\n\n" +
		"Даты в формате ГГГГ-ММ-ДД, время в формате ЧЧ:ММ.\n" +
		"Дни недели: monday..sunday."

	h.sendText(ctx, b, update.Message.Chat.ID, helpText)
}
