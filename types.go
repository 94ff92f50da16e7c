package sitedesk

// Collection keys in the key-value store.
const (
	KeyUpdates          = "updates"
	KeyEventSets        = "event_photo_sets"
	KeyGallerySets      = "gallery_photo_sets"
	KeyChapterSets      = "chapter_photo_sets"
	KeyReunionSets      = "reunion_photo_sets"
	KeyMiddleBoxPhotos  = "homepage_middle_box_photos"
	KeyHomeGalleryPhoto = "homepage_gallery_photos"
	KeyUsers            = "users"
	KeyDonations        = "donations"
	KeyUserLogins       = "user_logins"
	KeyHeroTitle        = "hero_title"
	KeyHeroQuote        = "hero_quote"
	keyAboutPrefix      = "about_"
)

// PhotoItem is one committed photo. URL holds the inline data-URL payload.
type PhotoItem struct {
	ID         string `json:"id"`
	URL        string `json:"url"`
	Name       string `json:"name"`
	UploadedAt int64  `json:"uploadedAt"`
}

// PhotoSet is a group of photos persisted as one append-only record. Which
// descriptor fields are set depends on the kind of set.
type PhotoSet struct {
	ID          string      `json:"id"`
	EventName   string      `json:"eventName,omitempty"`
	EventDate   string      `json:"eventDate,omitempty"`
	ChapterType string      `json:"chapterType,omitempty"`
	Year        int         `json:"year,omitempty"`
	Photos      []PhotoItem `json:"photos"`
	CreatedAt   int64       `json:"createdAt"`
}

// Update is an announcement shown on the site.
type Update struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Date      string `json:"date"`
	CreatedAt int64  `json:"createdAt"`
}

// NoticeKind distinguishes success and error notices.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice is the user-visible message produced by a console action.
type Notice struct {
	Kind    NoticeKind
	Message string
}

func success(msg string) Notice { return Notice{Kind: NoticeSuccess, Message: msg} }

func failure(msg string) Notice { return Notice{Kind: NoticeError, Message: msg} }
