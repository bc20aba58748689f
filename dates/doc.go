// Package dates normalizes the free-text date expressions found on resumes.
//
// Every value this package produces is one of three shapes: a bare year
// ("2019"), a year and month ("2019-03"), or the sentinel [Present] marking an
// open-ended range. The empty string means the text could not be read.
//
//	dates.Normalize("Sept. 2021")              // "2021-09"
//	dates.NormalizeRange("Jan 2019 - Present") // "2019-01", "present"
//	months, ok := dates.Duration("2019", "2020-06")
//
// Range detection prefers an explicit "date - date" expression; when none is
// found the text is split on the first hyphen or en-dash that is not the
// separator of a "YYYY-MM" value.
package dates
