package lms

import "time"

// Difficulty levels accepted by the course filters.
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// Content types.
const (
	ContentVideo = "video"
	ContentPDF   = "pdf"
	ContentText  = "text"
)

// DefaultSort orders courses newest first.
const DefaultSort = "-created_at"

// Difficulties lists every difficulty in display order.
var Difficulties = []string{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced}

// Sorts lists every sort key the API accepts.
var Sorts = []string{
	"-created_at", "created_at",
	"title", "-title",
	"price", "-price",
	"-students_count", "students_count",
}

type Category struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Icon         string    `json:"icon"`
	CoursesCount int       `json:"courses_count"`
	CreatedAt    time.Time `json:"created_at"`
}

type CategoryInput struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Icon        string `json:"icon" yaml:"icon"`
}

type Course struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Price         string    `json:"price"`
	Category      *int64    `json:"category"`
	CategoryName  string    `json:"category_name"`
	CategoryIcon  string    `json:"category_icon"`
	Difficulty    string    `json:"difficulty"`
	DurationHours int       `json:"duration_hours"`
	StudentsCount int       `json:"students_count"`
	Lecturer      int64     `json:"lecturer"`
	LecturerName  string    `json:"lecturer_name"`
	LecturerEmail string    `json:"lecturer_email"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	IsPublished   bool      `json:"is_published"`
	ThumbnailURL  *string   `json:"thumbnail_url"`
	IsEnrolled    bool      `json:"is_enrolled"`
}

// CourseInput is the writable part of a course, as read from a manifest.
// A zero Category and an empty ThumbnailURL are sent as null.
type CourseInput struct {
	Title         string `yaml:"title"`
	Description   string `yaml:"description"`
	Price         string `yaml:"price"`
	Category      int64  `yaml:"category"`
	Difficulty    string `yaml:"difficulty"`
	DurationHours int    `yaml:"duration_hours"`
	IsPublished   bool   `yaml:"is_published"`
	ThumbnailURL  string `yaml:"thumbnail_url"`
}

type Enrollment struct {
	ID                int64     `json:"id"`
	Student           int64     `json:"student"`
	StudentName       string    `json:"student_name"`
	Course            int64     `json:"course"`
	CourseTitle       string    `json:"course_title"`
	CourseDescription string    `json:"course_description"`
	CourseThumbnail   *string   `json:"course_thumbnail"`
	EnrolledAt        time.Time `json:"enrolled_at"`
}

// EnrollResult is the outcome of an enroll call. Created is false when the
// student was already enrolled, in which case only Message is set.
type EnrollResult struct {
	Created    bool
	Enrollment *Enrollment
	Message    string
}

type Content struct {
	ID          int64     `json:"id"`
	Course      int64     `json:"course"`
	CourseTitle string    `json:"course_title"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ContentType string    `json:"content_type"`
	VideoURL    *string   `json:"video_url"`
	FileURL     *string   `json:"file_url"`
	ContentText *string   `json:"content_text"`
	Order       int       `json:"order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	IsCompleted bool      `json:"is_completed"`
}

// ContentInput is the writable part of a lesson, as read from a manifest.
// Only the body field that matches ContentType is sent.
type ContentInput struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	ContentType string `yaml:"content_type"`
	VideoURL    string `yaml:"video_url"`
	FileURL     string `yaml:"file_url"`
	ContentText string `yaml:"content_text"`
	Order       int    `yaml:"order"`
}

// ContentProgress is a student's completion record for one lesson.
type ContentProgress struct {
	ID           int64      `json:"id"`
	Student      int64      `json:"student"`
	StudentName  string     `json:"student_name"`
	Content      int64      `json:"content"`
	ContentTitle string     `json:"content_title"`
	CourseID     int64      `json:"course_id"`
	CourseTitle  string     `json:"course_title"`
	Completed    bool       `json:"completed"`
	CompletedAt  *time.Time `json:"completed_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// CourseProgress summarises the current student's completion of one course.
type CourseProgress struct {
	CourseID           int64   `json:"course_id"`
	CourseTitle        string  `json:"course_title"`
	TotalContent       int     `json:"total_content"`
	CompletedContent   int     `json:"completed_content"`
	ProgressPercentage float64 `json:"progress_percentage"`
	StudentName        string  `json:"student_name"`
	StudentID          int64   `json:"student_id"`
}

// CourseStudentProgress is the lecturer view of every student in a course.
type CourseStudentProgress struct {
	CourseID     int64             `json:"course_id"`
	CourseTitle  string            `json:"course_title"`
	TotalContent int               `json:"total_content"`
	Students     []StudentProgress `json:"students"`
}

type StudentProgress struct {
	StudentID          int64               `json:"student_id"`
	StudentName        string              `json:"student_name"`
	StudentEmail       string              `json:"student_email"`
	EnrolledAt         time.Time           `json:"enrolled_at"`
	TotalContent       int                 `json:"total_content"`
	CompletedContent   int                 `json:"completed_content"`
	ProgressPercentage float64             `json:"progress_percentage"`
	ContentProgress    []ContentCompletion `json:"content_progress"`
}

type ContentCompletion struct {
	ContentID    int64      `json:"content_id"`
	ContentTitle string     `json:"content_title"`
	Completed    bool       `json:"completed"`
	CompletedAt  *time.Time `json:"completed_at"`
}
