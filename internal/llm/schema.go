package llm

// Typed form of the résumé document the model is asked to produce. Parsed
// replies are normalized through these types so every key is always present
// in the stored JSON: absent arrays become [], absent optional strings stay
// null.

type EmploymentType string

const (
	EmploymentFullTime   EmploymentType = "FULL_TIME"
	EmploymentPartTime   EmploymentType = "PART_TIME"
	EmploymentInternship EmploymentType = "INTERNSHIP"
	EmploymentContract   EmploymentType = "CONTRACT"
)

type LocationType string

const (
	LocationOnsite LocationType = "ONSITE"
	LocationRemote LocationType = "REMOTE"
	LocationHybrid LocationType = "HYBRID"
)

type DegreeType string

const (
	DegreeHighSchool DegreeType = "HIGH_SCHOOL"
	DegreeAssociate  DegreeType = "ASSOCIATE"
	DegreeBachelor   DegreeType = "BACHELOR"
	DegreeMaster     DegreeType = "MASTER"
	DegreeDoctorate  DegreeType = "DOCTORATE"
)

type LanguageLevel string

const (
	LanguageBeginner     LanguageLevel = "BEGINNER"
	LanguageIntermediate LanguageLevel = "INTERMEDIATE"
	LanguageAdvanced     LanguageLevel = "ADVANCED"
	LanguageNative       LanguageLevel = "NATIVE"
)

type ResumeData struct {
	Profile         Profile          `json:"profile"`
	WorkExperiences []WorkExperience `json:"workExperiences"`
	Educations      []Education      `json:"educations"`
	Skills          []string         `json:"skills"`
	Licenses        []License        `json:"licenses"`
	Languages       []Language       `json:"languages"`
	Achievements    []Achievement    `json:"achievements"`
	Publications    []Publication    `json:"publications"`
	Honors          []Honor          `json:"honors"`
}

type Profile struct {
	Name                string  `json:"name"`
	Surname             string  `json:"surname"`
	Email               string  `json:"email"`
	Headline            string  `json:"headline"`
	ProfessionalSummary string  `json:"professionalSummary"`
	LinkedIn            *string `json:"linkedIn"`
	Website             *string `json:"website"`
	Country             string  `json:"country"`
	City                string  `json:"city"`
	Relocation          bool    `json:"relocation"`
	Remote              bool    `json:"remote"`
}

type WorkExperience struct {
	JobTitle       string         `json:"jobTitle"`
	EmploymentType EmploymentType `json:"employmentType"`
	LocationType   LocationType   `json:"locationType"`
	Company        string         `json:"company"`
	StartMonth     int            `json:"startMonth"`
	StartYear      int            `json:"startYear"`
	EndMonth       *int           `json:"endMonth"`
	EndYear        *int           `json:"endYear"`
	Current        bool           `json:"current"`
	Description    string         `json:"description"`
}

type Education struct {
	School      string     `json:"school"`
	Degree      DegreeType `json:"degree"`
	Major       string     `json:"major"`
	StartYear   int        `json:"startYear"`
	EndYear     int        `json:"endYear"`
	Current     bool       `json:"current"`
	Description string     `json:"description"`
}

type License struct {
	Name        string `json:"name"`
	Issuer      string `json:"issuer"`
	IssueYear   int    `json:"issueYear"`
	Description string `json:"description"`
}

type Language struct {
	Language string        `json:"language"`
	Level    LanguageLevel `json:"level"`
}

type Achievement struct {
	Title        string `json:"title"`
	Organization string `json:"organization"`
	AchieveDate  string `json:"achieveDate"`
	Description  string `json:"description"`
}

type Publication struct {
	Title           string `json:"title"`
	Publisher       string `json:"publisher"`
	PublicationDate string `json:"publicationDate"`
	PublicationURL  string `json:"publicationUrl"`
	Description     string `json:"description"`
}

type Honor struct {
	Title       string `json:"title"`
	Issuer      string `json:"issuer"`
	IssueMonth  int    `json:"issueMonth"`
	IssueYear   int    `json:"issueYear"`
	Description string `json:"description"`
}

// Normalize replaces nil slices so that marshalling always emits every key.
func (r *ResumeData) Normalize() {
	if r.WorkExperiences == nil {
		r.WorkExperiences = []WorkExperience{}
	}
	if r.Educations == nil {
		r.Educations = []Education{}
	}
	if r.Skills == nil {
		r.Skills = []string{}
	}
	if r.Licenses == nil {
		r.Licenses = []License{}
	}
	if r.Languages == nil {
		r.Languages = []Language{}
	}
	if r.Achievements == nil {
		r.Achievements = []Achievement{}
	}
	if r.Publications == nil {
		r.Publications = []Publication{}
	}
	if r.Honors == nil {
		r.Honors = []Honor{}
	}
}
