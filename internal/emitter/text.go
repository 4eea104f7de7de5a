package emitter

import (
	"strings"

	"github.com/beetlebugorg/rayexport/internal/field"
)

// TextBanner is the reserved header of a RayTech text file, reproduced
// byte for byte. RayTech skips exactly these lines before reading records,
// so the spelling and asterisk runs must not change.
var TextBanner = []string{
	"*********** RAYTECH WAPOINT AND ROUTE TXT FILE --DO NOT EDIT THIS LINE!!!! ***********",
	"*********** The first 10 lines of this file are reserved *****************",
	"*********** The waypoint data is comma delimited in the order of: ***********",
	"*********** Loc,Name,Lat,Long,Rng,Bear,Bmp,Fixed,Locked,Notes,Rel,RelSet,RcCount,RcRadius,Show,RcShow,SeaTemp,Depth,Time,MarkedForTransfer,GUID*********",
	"*********** Following the waypoint data is the route data: ********",
	"*********** Route data is also comma delimited in the order of:***********",
	"*********** RouteName,Visible,MarkedForTransfer,NumMarks, Guid***********",
	"*********** MarkName,Cog,Eta,Length,PredictedDrift,PredictedSet,PredictedSog,PredictedTime,PredictedTwa,PredictedTwd,PredictedTws***********",
	"*****************************************************************************************************************",
	"************************************ END HEADER ****************************************************************",
}

// TextFields is the number of comma-separated fields in a text record.
const TextFields = 21

// Constant fields between Long and Time:
// Rng,Bear,Bmp,Fixed,Locked,Notes,Rel,RelSet,RcCount,RcRadius,Show,RcShow,SeaTemp,Depth
const textConstants = "0,0,3,1,0,,,1,1,0,1,0,-32678,65535"

// textEmitter writes the RayTech text format. It never carries route data.
// The Loc field holds the group sanitized like a name, so it never contains
// a comma.
type textEmitter struct{}

func (textEmitter) Format() Format { return FormatText }

func (textEmitter) Encode(waypoints []field.Waypoint, opts Options) ([]byte, error) {
	eol := opts.lineEnding()

	var sb strings.Builder
	for _, line := range TextBanner {
		sb.WriteString(line)
		sb.WriteString(eol)
	}

	for _, r := range prepare(waypoints, opts) {
		sb.WriteString(r.Group)
		sb.WriteByte(',')
		sb.WriteString(r.Name)
		sb.WriteByte(',')
		sb.WriteString(field.FormatFloat15(r.Lat))
		sb.WriteByte(',')
		sb.WriteString(field.FormatFloat15(r.Lon))
		sb.WriteByte(',')
		sb.WriteString(textConstants)
		sb.WriteByte(',')
		sb.WriteString(field.FormatFloat15(r.Time))
		sb.WriteString(",1,") // MarkedForTransfer
		sb.WriteString(r.ID)
		sb.WriteString(eol)
	}

	return []byte(sb.String()), nil
}
