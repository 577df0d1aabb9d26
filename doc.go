/*
go-skelannot generates per-frame 2D skeletal keypoint annotations for tracked
scene entities, for use as ground truth when building machine learning
datasets.  Given a keypoint template describing named skeletal points and
their connectivity, it locates each labeled entity's corresponding anatomical
points through the entity's rig or explicitly placed joint overrides,
projects them into image space, classifies the entity's current pose from its
animation state, and emits one structured annotation record per entity per
frame.

The library reads ground truth transforms directly from the scene and does
not perform pose estimation from images.

See example code and usage in the example subdirectory.
*/
package skelannot
