// Package i18n negotiates the response language and translates message keys.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"fundledger/internal/domain"
)

// Keys used by the HTTP layer in addition to the domain message keys.
const (
	MsgInvalidPayload = "invalid payload"
	MsgInvalidID      = "invalid id"
	MsgUnauthorized   = "authentication required"
	MsgInvalidToken   = "invalid token"
	MsgForbidden      = "superuser rights required"
	MsgInternal       = "internal error"
	MsgRateLimited    = "too many requests"
)

var (
	supported = []language.Tag{language.English, language.Russian}
	matcher   = language.NewMatcher(supported)
	messages  = buildCatalog()
)

var russian = map[string]string{
	domain.MsgProjectNotFound:      "Проект не найден!",
	domain.MsgProjectNameTaken:     "Проект с таким именем уже существует!",
	domain.MsgProjectClosed:        "Закрытый проект нельзя редактировать!",
	domain.MsgProjectHasFunds:      "В проект были внесены средства, не подлежит удалению!",
	domain.MsgFullAmountBelowFunds: "Требуемая сумма проекта не может быть меньше вложенной!",
	domain.MsgFundsAlreadyAssigned: "Средства уже распределены",
	domain.MsgNameRequired:         "Название проекта не может быть пустым!",
	domain.MsgNameTooLong:          "Название проекта не может быть длиннее 100 символов!",
	domain.MsgDescriptionRequired:  "Описание проекта не может быть пустым!",
	domain.MsgAmountPositive:       "Сумма должна быть положительным числом!",
	domain.MsgEmptyPatch:           "Нет полей для обновления!",
	MsgInvalidPayload:              "Некорректное тело запроса",
	MsgInvalidID:                   "Некорректный идентификатор",
	MsgUnauthorized:                "Требуется авторизация",
	MsgInvalidToken:                "Недействительный токен",
	MsgForbidden:                   "Требуются права суперпользователя",
	MsgInternal:                    "Внутренняя ошибка сервера",
	MsgRateLimited:                 "Слишком много запросов",
}

func buildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, text := range russian {
		_ = b.SetString(language.English, key, key)
		_ = b.SetString(language.Russian, key, text)
	}
	return b
}

// Match picks the best supported locale for an Accept-Language style value.
// The fallback is used when nothing matches.
func Match(accept, fallback string) string {
	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		return Normalize(fallback)
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Normalize(fallback)
	}
	return supported[idx].String()
}

// Normalize maps any locale string to a supported one, English by default.
func Normalize(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		return language.English.String()
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return language.English.String()
	}
	return supported[idx].String()
}

// Translate renders key in locale. Unknown keys are returned unchanged.
func Translate(locale, key string) string {
	tag := language.Make(Normalize(locale))
	return message.NewPrinter(tag, message.Catalog(messages)).Sprintf(key)
}
