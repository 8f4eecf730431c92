package replay

// Version of the replay file format
const Version = "2.0"

// FrameInput records the button pressed on a single frame
type FrameInput struct {
	F int `json:"f"` // Frame number (1-based, matches the machine clock)
	B int `json:"b"` // Quadrant
}

// Data contains all data needed to replay a test session.
// Only frames carrying a press are stored.
type Data struct {
	Version     string       `json:"version"`
	Seed        int64        `json:"seed"`
	Skin        string       `json:"skin"`
	TestID      string       `json:"testID"`
	StartTime   string       `json:"startTime"`
	TotalFrames int          `json:"totalFrames"`
	Presses     []FrameInput `json:"presses"`
}
