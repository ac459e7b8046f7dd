package render

import (
	"bytes"
	"image/color"
	"time"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/pr-poehali-dev/telegram-diary-bot/internal/formatting"
)

// ItemKind определяет тип занятости в ячейке дня
type ItemKind string

const (
	KindStudy   ItemKind = "study"
	KindEvent   ItemKind = "event"
	KindBooking ItemKind = "booking"
)

// DayItem - один прямоугольник занятости на картинке недели
type DayItem struct {
	StartMinutes int
	EndMinutes   int
	Label        string
	Kind         ItemKind
}

// Константы размеров и отступов
const (
	imageWidth      = 1400
	imageHeight     = 900
	headerHeight    = 100
	leftLabelsWidth = 80
	legendWidth     = 120
	dayPaddingX     = 8
	minItemHeight   = 8.0
	itemRadius      = 6.0
	shadowOffset    = 3.0
	totalDays       = 7
	hourPaddingTop  = 2
	hourPaddingBot  = 2
	defaultMinHour  = 8
	defaultMaxHour  = 21
)

// Цветовая схема
var (
	bgColor        = color.RGBA{245, 246, 248, 255}
	textColor      = color.RGBA{80, 85, 90, 220}
	hourLabelColor = color.RGBA{110, 115, 120, 200}
	hourLineColor  = color.NRGBA{150, 150, 150, 255}
	todayBgColor   = color.NRGBA{255, 99, 71, 125}
	evenDayColor   = color.NRGBA{240, 240, 240, 255}
	oddDayColor    = color.NRGBA{220, 220, 220, 255}
	nowLineColor   = color.NRGBA{255, 80, 80, 200}

	studyColor   = color.RGBA{130, 170, 255, 220}
	eventColor   = color.RGBA{255, 200, 120, 230}
	bookingColor = color.RGBA{133, 193, 85, 220}
	defaultColor = color.RGBA{220, 220, 220, 200}

	itemTextColor   = color.RGBA{20, 24, 28, 230}
	itemShadowColor = color.RGBA{0, 0, 0, 20}

	legendTextColor = color.RGBA{70, 74, 78, 220}
)

// hourRange содержит диапазон часов для отображения
type hourRange struct {
	start int
	end   int
	total int
}

const labelFontSize = 14.0

var cachedFont *opentype.Font

// loadFont устанавливает шрифт Go Regular (покрывает кириллицу)
// или basicfont, если шрифт не удалось разобрать
func loadFont(dc *gg.Context, size float64) {
	if cachedFont == nil {
		parsed, err := opentype.Parse(goregular.TTF)
		if err != nil {
			dc.SetFontFace(basicfont.Face7x13)
			return
		}
		cachedFont = parsed
	}

	face, err := opentype.NewFace(cachedFont, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		dc.SetFontFace(basicfont.Face7x13)
		return
	}
	dc.SetFontFace(face)
}

// WeekStart возвращает понедельник недели, в которую попадает дата
func WeekStart(date time.Time) time.Time {
	normalized := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	daysSinceMonday := int(normalized.Weekday()) - 1
	if normalized.Weekday() == time.Sunday {
		daysSinceMonday = 6
	}

	return normalized.AddDate(0, 0, -daysSinceMonday)
}

// WeekImage рисует расписание недели: учёба, мероприятия и записи клиентов.
// itemsByDay ключуется датой в формате ГГГГ-ММ-ДД.
func WeekImage(weekStart time.Time, itemsByDay map[string][]DayItem) ([]byte, error) {
	today := normalizeToDay(time.Now())
	weekEnd := weekStart.AddDate(0, 0, 6)
	highlightToday := !today.Before(weekStart) && !today.After(weekEnd)

	hours := calculateHourRange(itemsByDay)

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(bgColor)
	dc.Clear()
	loadFont(dc, labelFontSize)

	dayWidth := (imageWidth - leftLabelsWidth - legendWidth) / totalDays
	dayHeight := imageHeight - headerHeight
	cellHeight := float64(dayHeight) / float64(hours.total)

	drawHeader(dc, weekStart, weekEnd)
	drawHourLabels(dc, hours, cellHeight)

	currentDate := weekStart
	for dayIndex := 0; dayIndex < totalDays; dayIndex++ {
		x := float64(leftLabelsWidth + dayIndex*dayWidth)
		y := float64(headerHeight)
		isToday := highlightToday && isSameDay(currentDate, today)

		drawDayBackground(dc, x, y, dayWidth, dayHeight, dayIndex, isToday)
		drawDayHeader(dc, currentDate, x, y, dayWidth)
		drawHourLines(dc, x, y, dayWidth, hours, cellHeight)

		dateKey := currentDate.Format("2006-01-02")
		for _, item := range itemsByDay[dateKey] {
			drawItem(dc, item, x, y, dayWidth, hours, cellHeight)
		}

		currentDate = currentDate.AddDate(0, 0, 1)
	}

	drawNowLine(dc, highlightToday, today, weekStart, hours, cellHeight, dayWidth)
	drawLegend(dc)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// normalizeToDay нормализует время к началу дня
func normalizeToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// isSameDay проверяет, являются ли две даты одним днём
func isSameDay(date1, date2 time.Time) bool {
	return date1.Year() == date2.Year() &&
		date1.Month() == date2.Month() &&
		date1.Day() == date2.Day()
}

// calculateHourRange определяет диапазон часов для отображения
func calculateHourRange(itemsByDay map[string][]DayItem) hourRange {
	minHour := 24
	maxHour := 0

	for _, items := range itemsByDay {
		for _, item := range items {
			startH := item.StartMinutes / 60
			endH := item.EndMinutes / 60
			if item.EndMinutes%60 > 0 {
				endH++
			}
			if startH < minHour {
				minHour = startH
			}
			if endH > maxHour {
				maxHour = endH
			}
		}
	}

	if minHour == 24 {
		minHour = defaultMinHour
		maxHour = defaultMaxHour
	}

	startHour := minHour - hourPaddingTop
	endHour := maxHour + hourPaddingBot
	if startHour < 0 {
		startHour = 0
	}
	if endHour > 23 {
		endHour = 23
	}

	return hourRange{start: startHour, end: endHour, total: endHour - startHour + 1}
}

// drawHeader рисует заголовок с диапазоном дат недели
func drawHeader(dc *gg.Context, weekStart, weekEnd time.Time) {
	title := weekStart.Format("02.01") + " - " + weekEnd.Format("02.01.2006")

	loadFont(dc, 22)
	dc.SetColor(textColor)
	w, h := dc.MeasureString(title)
	dc.DrawStringAnchored(title, float64(imageWidth)/2-w/2, float64(headerHeight)/4+h/2, 0, 0)
}

// drawHourLabels рисует колонку с часами слева
func drawHourLabels(dc *gg.Context, hours hourRange, cellHeight float64) {
	loadFont(dc, labelFontSize)
	dc.SetColor(hourLabelColor)

	for hIdx := 0; hIdx < hours.total; hIdx++ {
		actualHour := hours.start + hIdx
		y := float64(headerHeight) + float64(hIdx)*cellHeight
		label := formatting.FormatMinutes(actualHour * 60)
		dc.DrawStringAnchored(label, float64(leftLabelsWidth)-10, y, 1, 0.5)
	}
}

// drawDayBackground рисует фон дня
func drawDayBackground(dc *gg.Context, x, y float64, dayWidth, dayHeight, dayIndex int, isToday bool) {
	if isToday {
		dc.SetColor(todayBgColor)
	} else if dayIndex%2 == 0 {
		dc.SetColor(evenDayColor)
	} else {
		dc.SetColor(oddDayColor)
	}
	dc.DrawRectangle(x, y, float64(dayWidth), float64(dayHeight))
	dc.Fill()
}

// drawDayHeader рисует название дня недели и дату
func drawDayHeader(dc *gg.Context, date time.Time, x, y float64, dayWidth int) {
	dateStr := date.Format("02.01")
	weekdayStr := formatting.GetWeekdayShortName(date.Weekday())

	dc.SetColor(textColor)
	dc.DrawStringAnchored(dateStr, x+float64(dayWidth)/2, y-28, 0.5, 0.5)
	dc.DrawStringAnchored(weekdayStr, x+float64(dayWidth)/2, y-12, 0.5, 0.5)
}

// drawHourLines рисует горизонтальные линии часов
func drawHourLines(dc *gg.Context, x, y float64, dayWidth int, hours hourRange, cellHeight float64) {
	dc.SetLineWidth(0.3)
	dc.SetColor(hourLineColor)

	for hIdx := 0; hIdx <= hours.total; hIdx++ {
		hy := y + float64(hIdx)*cellHeight
		dc.DrawLine(x, hy, x+float64(dayWidth), hy)
		dc.Stroke()
	}
}

// drawItem рисует один прямоугольник занятости
func drawItem(dc *gg.Context, item DayItem, x, y float64, dayWidth int, hours hourRange, cellHeight float64) {
	itemStartHour := float64(item.StartMinutes) / 60.0
	itemEndHour := float64(item.EndMinutes) / 60.0

	itemY := y + (itemStartHour-float64(hours.start))*cellHeight
	itemHeight := (itemEndHour - itemStartHour) * cellHeight
	if itemHeight < minItemHeight {
		itemHeight = minItemHeight
	}

	fillColor := itemColor(item.Kind)
	itemWidth := float64(dayWidth) - float64(dayPaddingX*2)

	// Тень
	dc.SetColor(itemShadowColor)
	dc.DrawRoundedRectangle(x+dayPaddingX+shadowOffset, itemY+2+shadowOffset, itemWidth, itemHeight-4, itemRadius)
	dc.Fill()

	// Прямоугольник занятости
	dc.SetColor(fillColor)
	dc.DrawRoundedRectangle(x+float64(dayPaddingX), itemY+2, itemWidth, itemHeight-4, itemRadius)
	dc.Fill()

	// Рамка
	dc.SetColor(darkenColor(fillColor, 0.8))
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(x+float64(dayPaddingX), itemY+2, itemWidth, itemHeight-4, itemRadius)
	dc.Stroke()

	// Время и подпись
	dc.SetColor(itemTextColor)
	txtX := x + float64(dayPaddingX) + 8
	txtY := itemY + 8 + 10
	dc.DrawStringAnchored(formatting.FormatMinutes(item.StartMinutes), txtX, txtY, 0, 0)

	label := item.Label
	if label != "" && itemHeight > 25 {
		maxLen := 20
		if len(label) > maxLen {
			label = label[:maxLen-3] + "..."
		}
		dc.DrawStringAnchored(label, txtX, txtY+16, 0, 0)
	}
}

// drawNowLine рисует линию текущего времени поверх сегодняшнего дня
func drawNowLine(dc *gg.Context, highlightToday bool, today, weekStart time.Time, hours hourRange, cellHeight float64, dayWidth int) {
	if !highlightToday {
		return
	}

	now := time.Now()
	nowHour := float64(now.Hour()) + float64(now.Minute())/60.0
	if nowHour < float64(hours.start) || nowHour > float64(hours.end+1) {
		return
	}

	dayIndex := int(today.Sub(weekStart).Hours() / 24)
	x := float64(leftLabelsWidth + dayIndex*dayWidth)
	y := float64(headerHeight) + (nowHour-float64(hours.start))*cellHeight

	dc.SetColor(nowLineColor)
	dc.SetLineWidth(2)
	dc.DrawLine(x, y, x+float64(dayWidth), y)
	dc.Stroke()
}

// drawLegend рисует легенду справа
func drawLegend(dc *gg.Context) {
	entries := []struct {
		label string
		fill  color.RGBA
	}{
		{"Учёба", studyColor},
		{"Мероприятие", eventColor},
		{"Запись", bookingColor},
	}

	x := float64(imageWidth - legendWidth + 10)
	y := float64(headerHeight + 10)

	for _, entry := range entries {
		dc.SetColor(entry.fill)
		dc.DrawRoundedRectangle(x, y, 14, 14, 3)
		dc.Fill()

		dc.SetColor(legendTextColor)
		dc.DrawStringAnchored(entry.label, x+20, y+7, 0, 0.5)

		y += 24
	}
}

// itemColor возвращает цвет по типу занятости
func itemColor(kind ItemKind) color.RGBA {
	switch kind {
	case KindStudy:
		return studyColor
	case KindEvent:
		return eventColor
	case KindBooking:
		return bookingColor
	default:
		return defaultColor
	}
}

// darkenColor затемняет цвет на указанный множитель
func darkenColor(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}
