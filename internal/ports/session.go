package ports

type SessionStore interface {
	// Select запоминает модель пользователя и сбрасывает его кэш ответов.
	Select(userID int64, model ModelID)
	// Current возвращает ModelNone, если пользователь ещё ничего не выбрал.
	Current(userID int64) ModelID
	Count() int
}

type ResponseCache interface {
	Lookup(userID int64, text string) (string, bool)
	Store(userID int64, text, answer string)
	Clear(userID int64)
	Stats() CacheStats
}

type CacheStats struct {
	Users   int `json:"users"`
	Entries int `json:"entries"`
	Hits    int `json:"hits"`
	Misses  int `json:"misses"`
}

type ReplyKind int

const (
	ReplyNoModel ReplyKind = iota
	ReplyEmpty
	ReplyAnswer
	ReplyFallback
)

// Reply — то, что диспетчер отдаёт транспорту. Cached выставляется только при попадании в кэш,
// сам текст кэша пометку "(cached)" не содержит.
type Reply struct {
	Text   string
	Kind   ReplyKind
	Cached bool
}
