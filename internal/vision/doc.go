// Package vision measures on-camera delivery from per-frame observations.
//
// Face, landmark, and hand detection run in an external sidecar command that
// prints one JSON object per sampled frame, optionally followed by a summary
// record:
//
//	{"face":true,"eye_contact":80,"pose":true,"posture":100,"gesture":false,"brightness":122.5,"contrast":41.2,"laplacian_var":130.4}
//	{"type":"summary","frames_read":1500,"fps":30}
//
// This package invokes the sidecar, decodes its output, and aggregates the
// frames into the analysis.Video document: face presence, eye contact,
// posture, gesture frequency, a confidence estimate, and recording quality.
package vision
