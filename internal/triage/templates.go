package triage

// Scripted therapeutic responses. The crisis message is fixed and never
// replaced by generated or learned content.

const crisisResponse = "⚠️ **CRISIS SUPPORT:** I'm deeply concerned about your safety. Your life has value and meaning. Please reach out immediately:\n\n• National Suicide Prevention Lifeline: 988 (US)\n• Crisis Text Line: Text HOME to 741741\n• Emergency Services: 911\n\nYou don't have to face this alone. Professional help is available right now."

const depressionHighResponse = "I understand you're experiencing significant depression. This is a real medical condition, not a character flaw. Let's work through this together.\n\n• **What you're feeling is valid** - Depression affects how you think, feel, and function.\n• **You're not alone** - Many people recover with proper support.\n• **Let's identify triggers** - Can you tell me what situations or thoughts make it worse?\n• **Consider professional help** - A therapist or psychiatrist can provide evidence-based treatments.\n\nWhat would be most helpful right now - talking through your feelings, or learning coping strategies?"

const depressionResponse = "I hear that you're dealing with depression. This can feel overwhelming, but there are effective ways to manage it.\n\n• **Understanding your patterns** - When do you notice these feelings most?\n• **Small steps matter** - Even getting out of bed or showering is progress.\n• **Professional support** - Therapy and sometimes medication can be very effective.\n\nCan you share more about how long you've been feeling this way, or what's been most difficult?"

const anxietyResponse = "Anxiety can be very distressing. Let me help you understand and manage it.\n\n• **What's happening** - Anxiety is your body's alarm system. It's trying to protect you, but sometimes it's overly sensitive.\n• **Grounding techniques** - Let's try the 5-4-3-2-1 method: Name 5 things you see, 4 you can touch, 3 you hear, 2 you smell, 1 you taste.\n• **Breathing exercise** - Breathe in for 4, hold for 4, out for 6. This activates your body's relaxation response.\n• **Long-term strategies** - Cognitive Behavioral Therapy (CBT) is highly effective for anxiety.\n\nWhat triggers your anxiety most? Understanding this helps us develop better coping strategies."

const traumaResponse = "I recognize you've experienced trauma. Healing from trauma takes time and the right support.\n\n• **Your response is normal** - Trauma responses are your body's way of trying to protect you.\n• **Safety first** - Are you currently in a safe environment?\n• **Professional trauma therapy** - EMDR, trauma-focused CBT, or somatic therapy can be very helpful.\n• **Self-care** - Grounding exercises, maintaining routines, and connecting with trusted people.\n\nWould you like to talk about what happened, or focus on coping strategies for now? You're in control of this conversation."

const sleepResponse = "Sleep problems often go hand-in-hand with mental health challenges. Let's address this systematically.\n\n• **Sleep hygiene** - Same bedtime/wake time, cool dark room, no screens 1 hour before bed.\n• **Relaxation routine** - Try progressive muscle relaxation or guided meditation before bed.\n• **Address underlying issues** - Sleep problems can be symptoms of depression, anxiety, or trauma.\n• **Consider evaluation** - A sleep study might be helpful if this persists.\n\nHow long have you been experiencing sleep issues? And are you having trouble falling asleep, staying asleep, or both?"

const relationshipResponse = "Relationship difficulties can significantly impact our mental health. Let's explore this together.\n\n• **Your feelings matter** - Whether it's loneliness, conflict, or loss, these are valid concerns.\n• **Communication patterns** - What communication styles have you noticed in your relationships?\n• **Boundaries** - Healthy boundaries are essential for mental wellbeing.\n• **Support systems** - Who in your life can you trust and rely on?\n\nCan you tell me more about the relationship challenges you're facing? Understanding the specifics helps me provide better guidance."

const workStressResponse = "Work-related stress is a common concern that can significantly impact mental health.\n\n• **Identify stressors** - What specific aspects of work are most challenging?\n• **Work-life balance** - Are you able to disconnect from work during off-hours?\n• **Boundaries** - Setting clear professional boundaries is crucial for mental health.\n• **Support** - Consider discussing accommodations with HR or seeking employee assistance programs.\n\nWhat would help most - strategies to manage work stress, or exploring career changes?"

const griefResponse = "Grief is a natural response to loss, and everyone experiences it differently.\n\n• **No timeline** - There's no 'right' way or timeline for grieving.\n• **Allow feelings** - It's okay to feel sadness, anger, confusion, or even relief.\n• **Self-compassion** - Be gentle with yourself during this time.\n• **Support** - Grief counseling or support groups can be very helpful.\n• **Rituals** - Creating meaningful ways to honor the person you've lost can aid healing.\n\nWould you like to share more about your loss, or focus on coping strategies?"

const eatingDisorderResponse = "Eating disorders are serious medical conditions that require professional treatment.\n\n• **This is treatable** - Recovery is possible with the right support.\n• **Professional help is essential** - Please consider speaking with a therapist specializing in eating disorders and a registered dietitian.\n• **Medical evaluation** - A doctor should assess your physical health.\n• **Support groups** - Connecting with others in recovery can be valuable.\n\nYour health and wellbeing matter. Would you like help finding resources for professional treatment?"

const substanceResponse = "Substance use concerns often relate to underlying mental health issues. Let's address this with care.\n\n• **No judgment** - I'm here to support you, not judge.\n• **Dual diagnosis** - Often substance use and mental health conditions need to be treated together.\n• **Professional support** - Consider speaking with an addiction counselor or therapist.\n• **Harm reduction** - If you're not ready to stop completely, we can discuss safer use strategies.\n• **Support groups** - AA, NA, SMART Recovery, or other groups provide community support.\n\nWhat would be most helpful - discussing treatment options, or exploring what's driving the substance use?"

const breathingExerciseResponse = "Excellent. Let's practice deep breathing together. This activates your body's relaxation response.\n\n**Step 1:** Find a comfortable seated or lying position.\n**Step 2:** Close your eyes if comfortable, or soften your gaze.\n**Step 3:** Breathe in slowly through your nose for 4 counts... (1... 2... 3... 4...)\n**Step 4:** Hold your breath for 4 counts... (1... 2... 3... 4...)\n**Step 5:** Exhale slowly through your mouth for 6 counts... (1... 2... 3... 4... 5... 6...)\n\nRepeat this cycle 5-10 times. Notice how your body feels. I'm here with you."

const affirmativeResponse = "I'm glad you're open to working on this. What specific aspect would you like to focus on first?"

const breathingTechniqueResponse = "I'll guide you through a breathing exercise step-by-step:\n\n**The 4-4-6 Technique:**\n1. Inhale through your nose for 4 seconds\n2. Hold your breath for 4 seconds\n3. Exhale through your mouth for 6 seconds\n4. Repeat 5-10 times\n\nThis technique activates your parasympathetic nervous system, which helps calm anxiety and stress. The longer exhale is key - it signals safety to your body.\n\nWould you like to try it now?"

const questionResponse = "I'm here to help you understand and work through your concerns. What specific question can I help answer?"

const greetingResponse = "Hello. I'm Sanad, your mental health companion. I'm here to listen, support, and help you work through whatever you're experiencing. \n\nWhat brings you here today? You can share as much or as little as you're comfortable with."

const gratitudeResponse = "You're very welcome. Taking care of your mental health is important, and I'm here to support you on this journey.\n\nHow are you feeling now? Is there anything else you'd like to discuss or work on?"

const negationResponse = "That's completely okay. There's no pressure here - you're in control of this conversation.\n\nWhat would feel most helpful for you right now? We can explore other approaches, or simply talk."

const empatheticProbeResponse = "I can sense you're going through something difficult. Your feelings are valid and important.\n\n• **Let's understand** - Can you tell me more about what you're experiencing?\n• **No judgment** - This is a safe space to share.\n• **Working together** - We can explore strategies to help you feel better.\n\nWhat's been weighing on you most?"

const collaborativeProbeResponse = "I'm glad you're reaching out - that takes courage. Let's work together to address what you're facing.\n\n• **Understanding your situation** - Can you share more about what's been challenging?\n• **Evidence-based approaches** - We can explore therapeutic techniques that have been proven effective.\n• **Professional support** - Sometimes working with a therapist alongside our conversations can be very helpful.\n\nWhat would you like to focus on first?"

const neutralProbeResponse = "I'm listening. Can you tell me more about what you're experiencing or what's on your mind? Understanding your situation better helps me provide more targeted support."

// supportiveFallbackResponse is served when the whole pipeline fails; the
// caller never sees an opaque error.
const supportiveFallbackResponse = "I'm here with you. I wasn't able to fully process that message, but I'm listening - can you tell me a bit more about what's on your mind?"
