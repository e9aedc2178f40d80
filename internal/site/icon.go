package site

import "strings"

// Icon names a glyph from the site's icon set.
type Icon string

const (
	IconFileCheck Icon = "file-check"
	IconUsers     Icon = "users"
	IconBriefcase Icon = "briefcase"
	IconRefresh   Icon = "refresh-ccw"
	IconMegaphone Icon = "megaphone"
	IconScale     Icon = "scale"
	IconGavel     Icon = "gavel"
	IconBuilding  Icon = "building-2"
	IconTrain     Icon = "train-front"
)

// iconKeywords is checked top to bottom; the first substring hit wins.
var iconKeywords = []struct {
	keyword string
	icon    Icon
}{
	{"compliance", IconFileCheck},
	{"contract", IconFileCheck},
	{"eeo", IconUsers},
	{"investigation", IconUsers},
	{"human resources", IconUsers},
	{"workforce", IconUsers},
	{"consultative", IconUsers},
	{"supplier", IconBriefcase},
	{"small business", IconBriefcase},
	{"change", IconRefresh},
	{"media", IconMegaphone},
	{"public relations", IconMegaphone},
	{"outreach", IconMegaphone},
	{"policy", IconGavel},
	{"title vi", IconScale},
	{"monitoring", IconScale},
	{"dbe", IconBuilding},
	{"airport", IconTrain},
	{"transit", IconTrain},
}

// ServiceIcon picks an icon for a service title by keyword.  Every title
// maps to some icon; unmatched titles get IconBriefcase.
func ServiceIcon(title string) Icon {
	t := strings.ToLower(title)
	for _, k := range iconKeywords {
		if strings.Contains(t, k.keyword) {
			return k.icon
		}
	}
	return IconBriefcase
}
