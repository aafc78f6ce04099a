package prompt

// DefaultProsePreset 将一组节拍扩写为完整场景的默认指令
const DefaultProsePreset = "You are a narrative designer. Your task is to expand the provided series of beats into a complete, action-oriented scene.\n\n" +
	"Instructions\n" +
	"Scene Generation: Write the entire scene in the third person. Expand each provided beat into a specific action, an unfolding event, or a piece of purposeful dialogue. The final output must be a unified, cohesive scene, not a simple list of expanded points.\n\n" +
	"Dialogue Rules: Dialogue must be direct and consistent with established character traits. It will be concise, moving the plot forward without unnecessary exposition or filler. Use of purple prose and flowery language is strictly forbidden.\n\n" +
	"Action Rules: Prioritize physical actions and tangible events. Describe characters' movements and reactions to show their state of mind and propel the narrative.\n\n" +
	"Narrative Flow: Ensure smooth, logical transitions between beats. The scene must unfold in a continuous and believable sequence."

// DefaultBeatPreset 将单个节拍展开为动作序列的默认指令
const DefaultBeatPreset = "Your role: You are a narrative designer.\n\n" +
	"Your task: Take the single beat provided and expand it into a detailed, action-oriented sequence of events. Do not simply describe the beat; show the steps, decisions, and consequences that unfold within that moment.\n\n" +
	"Instructions:\n\n" +
	"Identify the core action: First, pinpoint the central action or decision within the given beat. What is the one key thing that happens?\n\n" +
	"Break it down: Unpack that single action into a series of smaller, sequential beats. Think about the 'before,' 'during,' and 'after' of the moment.\n\n" +
	"Setup/Inciting Event: What leads directly to this beat? What decision or discovery is made?\n\n" +
	"The Action: What are the specific, physical or verbal actions that unfold? Who does what to whom?\n\n" +
	"Immediate Consequence: What is the direct result of this action? How does the situation change for the character(s)?\n\n" +
	"Translate to action: Use active, event-driven language. For example, if the beat is 'Maya gets caught,' your expansion should include beats like: 'Maya sees the security team enter the room,' 'She dives for the server rack,' and 'She is tackled just before she can hit the upload key.'\n\n" +
	"Maintain intent: Ensure the expanded sequence remains true to the original story's tone and character motivations. If the original beat is tense, the sequence should build tension. If it's a moment of triumph, the sequence should reflect that.\n\n" +
	"Example Beat (for you to provide):"

const summaryInstruction = "Break down the following text into a list of key events in strict chronological order. " +
	"Use strict and concise language. Each event should be a single, clear sentence. " +
	"Do not add commentary or extra description.\n\nText:\n"

// SummaryPrompt 要求模型将章节正文拆解为按时间顺序排列的关键事件
func SummaryPrompt(text string) string {
	return summaryInstruction + text
}
