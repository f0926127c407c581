package models

type CreateLanguageRequest struct {
	Code       string `json:"code" validate:"required,min=2,max=16"`
	Name       string `json:"name" validate:"required,max=100"`
	NativeName string `json:"native_name" validate:"max=100"`
	IsRTL      bool   `json:"is_rtl"`
	IsActive   *bool  `json:"is_active"`
	IsDefault  bool   `json:"is_default"`
}

type UpdateLanguageRequest struct {
	Name       *string `json:"name" validate:"omitempty,max=100"`
	NativeName *string `json:"native_name" validate:"omitempty,max=100"`
	IsRTL      *bool   `json:"is_rtl"`
	IsActive   *bool   `json:"is_active"`
	IsDefault  *bool   `json:"is_default"`
}

type CreateArticleRequest struct {
	Title              string        `json:"title" validate:"required,min=1,max=255"`
	Slug               string        `json:"slug" validate:"omitempty,max=255"`
	Excerpt            string        `json:"excerpt"`
	Content            string        `json:"content"`
	CoverURL           string        `json:"cover_url" validate:"omitempty,url"`
	Status             ContentStatus `json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED"`
	OriginalLanguageID uint          `json:"original_language_id" validate:"required"`
	MetaTitle          string        `json:"meta_title" validate:"max=255"`
	MetaDescription    string        `json:"meta_description" validate:"max=500"`
	Keywords           string        `json:"keywords" validate:"max=500"`
	TagIDs             []uint        `json:"tag_ids"`
}

type UpdateArticleRequest struct {
	Title           *string        `json:"title" validate:"omitempty,min=1,max=255"`
	Slug            *string        `json:"slug" validate:"omitempty,max=255"`
	Excerpt         *string        `json:"excerpt"`
	Content         *string        `json:"content"`
	CoverURL        *string        `json:"cover_url" validate:"omitempty,url"`
	Status          *ContentStatus `json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED"`
	MetaTitle       *string        `json:"meta_title" validate:"omitempty,max=255"`
	MetaDescription *string        `json:"meta_description" validate:"omitempty,max=500"`
	Keywords        *string        `json:"keywords" validate:"omitempty,max=500"`
	TagIDs          *[]uint        `json:"tag_ids"`
}

type CreateTranslationRequest struct {
	LanguageID      uint          `json:"language_id" validate:"required"`
	Title           string        `json:"title" validate:"required,min=1,max=255"`
	Slug            string        `json:"slug" validate:"omitempty,max=255"`
	Excerpt         string        `json:"excerpt"`
	Content         string        `json:"content"`
	Status          ContentStatus `json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED"`
	MetaTitle       string        `json:"meta_title" validate:"max=255"`
	MetaDescription string        `json:"meta_description" validate:"max=500"`
	Keywords        string        `json:"keywords" validate:"max=500"`
}

type UpdateTranslationRequest struct {
	Title           *string        `json:"title" validate:"omitempty,min=1,max=255"`
	Slug            *string        `json:"slug" validate:"omitempty,max=255"`
	Excerpt         *string        `json:"excerpt"`
	Content         *string        `json:"content"`
	Status          *ContentStatus `json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED"`
	MetaTitle       *string        `json:"meta_title" validate:"omitempty,max=255"`
	MetaDescription *string        `json:"meta_description" validate:"omitempty,max=500"`
	Keywords        *string        `json:"keywords" validate:"omitempty,max=500"`
}

type CreateTagRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=100"`
	Color string `json:"color" validate:"omitempty,hexcolor"`
}

type TagTranslationRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type ArticleListParams struct {
	Status     string `form:"status"`
	LanguageID uint   `form:"language_id"`
	AuthorID   uint   `form:"author_id"`
	TagID      uint   `form:"tag_id"`
	Page       int    `form:"page,default=1"`
	Limit      int    `form:"limit,default=10"`
	SortBy     string `form:"sort_by,default=created_at"`
	SortOrder  string `form:"sort_order,default=desc"`
}

type PublicListParams struct {
	Tag   string `form:"tag"`
	Page  int    `form:"page,default=1"`
	Limit int    `form:"limit,default=10"`
}
