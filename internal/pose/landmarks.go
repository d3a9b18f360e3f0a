// Package pose holds the handle-point types the deformation core is
// driven by, plus the COCO body keypoint vocabulary the external
// detector reports in.
package pose

// Body keypoint indices following the COCO convention.
const (
	Nose = iota
	LeftEye
	RightEye
	LeftEar
	RightEar
	LeftShoulder
	RightShoulder
	LeftElbow
	RightElbow
	LeftWrist
	RightWrist
	LeftHip
	RightHip
	LeftKnee
	RightKnee
	LeftAnkle
	RightAnkle
	NumKeypoints = 17
)

// Skeleton lists the keypoint pairs joined by limbs, used by debug
// rendering and plausibility checks.
var Skeleton = [][2]int{
	{LeftAnkle, LeftKnee}, {LeftKnee, LeftHip},
	{RightAnkle, RightKnee}, {RightKnee, RightHip},
	{LeftHip, RightHip},
	{LeftShoulder, LeftHip}, {RightShoulder, RightHip},
	{LeftShoulder, RightShoulder},
	{LeftShoulder, LeftElbow}, {LeftElbow, LeftWrist},
	{RightShoulder, RightElbow}, {RightElbow, RightWrist},
	{Nose, LeftEye}, {Nose, RightEye},
	{LeftEye, LeftEar}, {RightEye, RightEar},
}

var keypointNames = [NumKeypoints]string{
	"nose", "left_eye", "right_eye", "left_ear", "right_ear",
	"left_shoulder", "right_shoulder", "left_elbow", "right_elbow",
	"left_wrist", "right_wrist", "left_hip", "right_hip",
	"left_knee", "right_knee", "left_ankle", "right_ankle",
}

// KeypointName returns the COCO name for a keypoint index, or "" for
// indices outside the convention (custom handle layouts).
func KeypointName(i int) string {
	if i < 0 || i >= NumKeypoints {
		return ""
	}
	return keypointNames[i]
}
