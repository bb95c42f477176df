package model

// CharacterRecord is the normalized progression state of a single operator.
type CharacterRecord struct {
	Code      string `json:"code" bson:"code"`
	Potential int    `json:"potential" bson:"potential"`
	Elite     int    `json:"elite" bson:"elite"`
	Level     int    `json:"level" bson:"level"`
	Skill     int    `json:"skill" bson:"skill"`
	Skill1    int    `json:"skill1" bson:"skill1"`
	Skill2    int    `json:"skill2" bson:"skill2"`
	Skill3    int    `json:"skill3" bson:"skill3"`
	ModuleX   int    `json:"moduleX" bson:"moduleX"`
	ModuleY   int    `json:"moduleY" bson:"moduleY"`
	ModuleD   int    `json:"moduleD" bson:"moduleD"`
	ModuleA   int    `json:"moduleA" bson:"moduleA"`
}
