package handlers

const (
	dateLayout     = "2006-01-02"
	clockLayout    = "15:04"
	dateTimeLayout = "02.01.2006 15:04"

	weeklyKeyword = "weekly"

	callbackConfirmDraft = "draft:confirm"
	callbackDiscardDraft = "draft:discard"
)
